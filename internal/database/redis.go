package database

import (
	"fmt"

	"github.com/redis/go-redis/v9"
)

var Client *redis.Client

func InitRedisCli(url string) (*redis.Client, error) {
	if Client != nil {
		return Client, nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	cli := redis.NewClient(opts)

	Client = cli

	return cli, nil
}
