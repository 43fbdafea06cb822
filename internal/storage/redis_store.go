package storage

import (
	"context"
	"errors"
	"github.com/redis/go-redis/v9"
	"time"
)

// redisCommands is the subset of *redis.Client the store needs.
type redisCommands interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

type RedisKeyValue struct {
	client redisCommands
	prefix string
}

func NewRedisKeyValue(client redisCommands, prefix string) *RedisKeyValue {
	return &RedisKeyValue{client: client, prefix: prefix}
}

func (r *RedisKeyValue) key(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + ":" + key
}

func (r *RedisKeyValue) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (r *RedisKeyValue) Set(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, r.key(key), value, 0).Err()
}

// Close leaves the client open, the redis provider owns it.
func (r *RedisKeyValue) Close() {}
