package database

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

type PoolConfig struct {
	MaxOpenConns int
	MaxIdleConns int
}

// NewDBConnection opens the pool and pings the server before returning it.
func NewDBConnection(ctx context.Context, connString string, pool PoolConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, err
	}

	if pool.MaxOpenConns <= 0 {
		pool.MaxOpenConns = 10
	}
	if pool.MaxIdleConns <= 0 {
		pool.MaxIdleConns = 5
	}
	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(pool.MaxIdleConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
