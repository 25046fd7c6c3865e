package kv

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/pocket-notes/internal/logger"
)

// RedisStore keeps entries as plain redis strings without expiration.
type RedisStore struct {
	client *redis.Client
	prefix string // prepended to every key, e.g. "pocket-notes:"
}

// NewRedisStore creates a store over an already connected client.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	k := s.prefix + key

	val, err := s.client.Get(ctx, k).Result()
	if errors.Is(err, redis.Nil) {
		logger.Log.Debugw("redis get", "key", k, "result", "absent")
		return "", false, nil
	}

	logger.Log.Debugw("redis get",
		"key", k,
		"size", len(val),
		"error", err,
	)

	if err != nil {
		return "", false, unavailable("get", key, err)
	}
	return val, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	k := s.prefix + key
	err := s.client.Set(ctx, k, value, 0).Err()

	logger.Log.Debugw("redis set",
		"key", k,
		"size", len(value),
		"error", err,
	)

	if err != nil {
		return unavailable("set", key, err)
	}
	return nil
}

func (s *RedisStore) Remove(ctx context.Context, key string) error {
	k := s.prefix + key
	n, err := s.client.Del(ctx, k).Result()

	logger.Log.Debugw("redis del",
		"key", k,
		"result", n,
		"error", err,
	)

	if err != nil {
		return unavailable("remove", key, err)
	}
	return nil
}
