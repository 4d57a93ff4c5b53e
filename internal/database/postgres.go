package database

import (
	"fmt"
	"telemora/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

var log = config.InitLogger()

type Postgres struct {
	Db *sqlx.DB
}

func ConnString(config *config.PostgresConfig) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable&client_encoding=%s",
		config.User,
		config.Password,
		config.Host,
		config.Port,
		config.DBName,
		"UTF8",
	)
}

func NewPostgres(config *config.PostgresConfig) (*Postgres, error) {
	db, err := sqlx.Connect("postgres", ConnString(config))
	if err != nil {
		log.Error("Failed to connect to database: ", err)
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	return &Postgres{
		Db: db,
	}, nil
}

func (p *Postgres) Close() error {
	err := p.Db.Close()
	if err != nil {
		log.Error("Error closing database: ", err)
		return err
	}

	return nil
}

func (p *Postgres) Ping() error {
	return p.Db.Ping()
}
