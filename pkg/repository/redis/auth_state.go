package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/go-redis/redis/v8"
	"github.com/m-mizutani/goerr/v2"

	"github.com/roomlab/roomboard/pkg/domain/model"
)

const authStateKeyspace = "authstate"

func (r *Redis) PutAuthState(ctx context.Context, state *model.AuthState) error {
	if err := state.Validate(); err != nil {
		return goerr.Wrap(err, "invalid auth state")
	}

	data, err := json.Marshal(state)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal auth state")
	}

	key := r.key(authStateKeyspace, state.State)
	if err := r.client.Set(ctx, key, data, ttlUntil(state.ExpiresAt)).Err(); err != nil {
		return goerr.Wrap(err, "failed to put auth state to redis")
	}

	return nil
}

func (r *Redis) GetAuthState(ctx context.Context, state string) (*model.AuthState, error) {
	if state == "" {
		return nil, goerr.New("auth state nonce cannot be empty")
	}

	key := r.key(authStateKeyspace, state)
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, goerr.Wrap(ErrNotFound, "auth state not found")
		}
		return nil, goerr.Wrap(err, "failed to get auth state from redis")
	}

	var record model.AuthState
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal auth state")
	}

	return &record, nil
}

func (r *Redis) DeleteAuthState(ctx context.Context, state string) error {
	if state == "" {
		return goerr.New("auth state nonce cannot be empty")
	}

	key := r.key(authStateKeyspace, state)
	deleted, err := r.client.Del(ctx, key).Result()
	if err != nil {
		return goerr.Wrap(err, "failed to delete auth state from redis")
	}
	if deleted == 0 {
		return goerr.Wrap(ErrNotFound, "auth state not found")
	}

	return nil
}
