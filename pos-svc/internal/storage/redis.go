package storage

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	Client *redis.Client
	Prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{Client: client, Prefix: prefix}
}

func (s *RedisStore) key(name string) string {
	return s.Prefix + name
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.Client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", errors.Wrapf(err, "read %s", key)
	}
	return value, nil
}

// Set stores the record without expiry; snapshots live until overwritten.
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	return errors.Wrapf(s.Client.Set(ctx, s.key(key), value, 0).Err(), "write %s", key)
}
