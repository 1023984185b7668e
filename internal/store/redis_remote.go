package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisRemote keeps the table as one JSON array under a single Redis key.
type RedisRemote struct {
	client *redis.Client
	key    string
}

func NewRedisRemote(addr, password string, db int, key string) *RedisRemote {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisRemote{client: client, key: key}
}

func (r *RedisRemote) Name() string { return "redis" }

func (r *RedisRemote) Fetch(ctx context.Context) ([]RawRow, error) {
	b, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var rows []RawRow
	if err := json.Unmarshal(b, &rows); err != nil {
		return nil, fmt.Errorf("redis %s: decode: %w", r.key, err)
	}
	return rows, nil
}

func (r *RedisRemote) Put(ctx context.Context, rows []Row) error {
	b, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key, b, 0).Err()
}

func (r *RedisRemote) Close() error {
	return r.client.Close()
}
