package repository

import (
	"context"
	"errors"
	"fmt"

	"resume-builder/internal/usecase"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps values as plain redis strings without expiry.
type RedisStore struct {
	client redis.Cmdable
	prefix string
}

// NewRedisStore namespaces every key with prefix.
func NewRedisStore(client redis.Cmdable, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Load(ctx context.Context, key string) ([]byte, error) {
	b, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, usecase.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return b, nil
}

func (s *RedisStore) Save(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
