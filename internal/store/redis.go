package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisKV implementa KV sobre um cliente Redis.
type RedisKV struct {
	client *redis.Client
}

// NewRedisKV cria o armazenamento durável padrão do painel.
func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{client: client}
}

// Get recupera o valor da chave.
func (s *RedisKV) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Set grava o valor com TTL opcional (zero = sem expiração).
func (s *RedisKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

// Del remove a chave.
func (s *RedisKV) Del(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
