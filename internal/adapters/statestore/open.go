package statestore

import (
	"context"
	"fmt"
	"io"

	"github.com/redis/go-redis/v9"

	"eventcreator/internal/domain"
)

// Options selects and configures a backend.
type Options struct {
	Backend       string // file, sqlite or redis
	Path          string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the StateStorage named by opts.Backend. The returned Closer
// releases any connection the backend holds.
func Open(ctx context.Context, opts Options) (domain.StateStorage, io.Closer, error) {
	switch opts.Backend {
	case "", "file":
		return NewFileStorage(opts.Path), nopCloser{}, nil
	case "sqlite":
		st, db, err := OpenSQLite(ctx, opts.Path)
		if err != nil {
			return nil, nil, err
		}
		return st, db, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		return NewRedisStorage(client, "eventcreator"), client, nil
	default:
		return nil, nil, fmt.Errorf("unknown state backend %q", opts.Backend)
	}
}
