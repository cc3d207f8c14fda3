package repository

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"
)

// KeyValueStore is the durable local storage behind the pending queues.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type redisKeyValueStore struct {
	client *goredis.Client
	prefix string
}

// NewRedisKeyValueStore stores values as plain Redis strings under prefix+key.
func NewRedisKeyValueStore(client *goredis.Client, prefix string) KeyValueStore {
	return &redisKeyValueStore{client: client, prefix: prefix}
}

func (s *redisKeyValueStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (s *redisKeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}

func (s *redisKeyValueStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}
