package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// GetterCache keeps recent get-method results in redis so repeated /info
// requests do not hit a liteserver each time. The contract has no setters for
// the admin address or commission, so entries only expire by TTL.
type GetterCache struct {
	redisCli *redis.Client
	ttl      time.Duration
}

func NewGetterCache(redisCli *redis.Client, ttl time.Duration) *GetterCache {
	return &GetterCache{
		redisCli: redisCli,
		ttl:      ttl,
	}
}

func getterKey(contract, method string) string {
	return fmt.Sprintf("telemora:getter:%s:%s", contract, method)
}

// Get returns the cached value and whether it was present.
func (c *GetterCache) Get(ctx context.Context, contract, method string) (string, bool, error) {
	res, err := c.redisCli.Get(ctx, getterKey(contract, method)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		log.Error("Error reading getter cache: ", err)
		return "", false, err
	}
	return res, true, nil
}

func (c *GetterCache) Set(ctx context.Context, contract, method, value string) error {
	return c.redisCli.Set(ctx, getterKey(contract, method), value, c.ttl).Err()
}
