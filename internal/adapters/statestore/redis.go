package statestore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"eventcreator/internal/domain"
)

type redisStorage struct {
	client    redis.Cmdable
	namespace string
}

// NewRedisStorage returns a StateStorage keeping each key at
// "{namespace}:{key}" without expiry.
func NewRedisStorage(client redis.Cmdable, namespace string) domain.StateStorage {
	return &redisStorage{client: client, namespace: namespace}
}

func (r *redisStorage) key(k string) string {
	if r.namespace == "" {
		return k
	}
	return r.namespace + ":" + k
}

func (r *redisStorage) Load(ctx context.Context, key string) ([]byte, error) {
	raw, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return raw, nil
}

func (r *redisStorage) Save(ctx context.Context, key string, data []byte) error {
	if err := r.client.Set(ctx, r.key(key), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
