// Package cache holds the Redis-backed helpers.
package cache

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const sequenceKeyPrefix = "homewiz:seq:"

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func NewRedisClient(cfg RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// RedisSequence hands out ids with INCR, which is atomic across processes.
type RedisSequence struct {
	client *redis.Client
}

func NewRedisSequence(client *redis.Client) *RedisSequence {
	return &RedisSequence{client: client}
}

func (s *RedisSequence) Next(ctx context.Context, name string) (int64, error) {
	n, err := s.client.Incr(ctx, sequenceKeyPrefix+name).Result()
	if err != nil {
		return 0, fmt.Errorf("redis sequence %s: %w", name, err)
	}
	return n, nil
}

// EnsureAtLeast raises the sequence to floor when it is lower, so ids already
// stored in the database are never handed out again.
func (s *RedisSequence) EnsureAtLeast(ctx context.Context, name string, floor int64) error {
	key := sequenceKeyPrefix + name
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Int64()
		if err != nil && err != redis.Nil {
			return err
		}
		if current >= floor {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, floor, 0)
			return nil
		})
		return err
	}, key)
	if err != nil {
		return fmt.Errorf("redis sequence %s: %w", name, err)
	}
	return nil
}

func (s *RedisSequence) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
