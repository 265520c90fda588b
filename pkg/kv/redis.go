package kv

import (
	"context"
)

// redisClient is the subset of pkg/redis.Client the backend uses.
type redisClient interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, keys ...string) error
	ScanPrefix(ctx context.Context, prefix string) ([]string, error)
}

// RedisStore maps the storage contract onto plain Redis strings.
type RedisStore struct {
	client redisClient
}

// NewRedisStore wraps a connected redis client.
func NewRedisStore(client redisClient) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Read(ctx context.Context, key string) (string, bool, error) {
	return r.client.Get(ctx, key)
}

func (r *RedisStore) Write(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value)
}

func (r *RedisStore) Remove(ctx context.Context, key string) error {
	return r.client.Del(ctx, key)
}

func (r *RedisStore) KeysWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	keys, err := r.client.ScanPrefix(ctx, prefix)
	if err != nil {
		return nil, err
	}
	if keys == nil {
		keys = []string{}
	}
	return sortedKeys(keys), nil
}
