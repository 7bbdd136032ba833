package redis

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/m-mizutani/goerr/v2"

	"github.com/roomlab/roomboard/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = interfaces.ErrNotFound

const defaultKeyPrefix = "roomboard:"

// Redis is a Repository backed by a Redis server. Values are stored as JSON
// under prefixed keys; sessions and pending authorization states carry a
// TTL matching their expiry so Redis reaps them on its own.
type Redis struct {
	client    *redis.Client
	keyPrefix string
}

var _ interfaces.Repository = &Redis{}

type Option func(*Redis)

// WithKeyPrefix overrides the default key prefix. Useful for running several
// instances against one Redis database.
func WithKeyPrefix(prefix string) Option {
	return func(r *Redis) {
		r.keyPrefix = prefix
	}
}

func New(ctx context.Context, addr, password string, db int, opts ...Option) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to connect to redis", goerr.V("addr", addr), goerr.V("db", db))
	}

	r := &Redis{
		client:    client,
		keyPrefix: defaultKeyPrefix,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

func (r *Redis) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

func (r *Redis) key(parts ...string) string {
	key := r.keyPrefix
	for i, p := range parts {
		if i > 0 {
			key += ":"
		}
		key += p
	}
	return key
}

// ttlUntil converts an absolute expiry to a Redis TTL. Zero means no TTL.
func ttlUntil(expiresAt time.Time) time.Duration {
	if expiresAt.IsZero() {
		return 0
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return time.Second
	}
	return ttl
}
