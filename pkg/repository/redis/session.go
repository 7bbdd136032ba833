package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/go-redis/redis/v8"
	"github.com/m-mizutani/goerr/v2"

	"github.com/roomlab/roomboard/pkg/domain/model/auth"
	"github.com/roomlab/roomboard/pkg/domain/types"
)

const sessionKeyspace = "session"

func (r *Redis) PutSession(ctx context.Context, session *auth.Session) error {
	if err := session.Validate(); err != nil {
		return goerr.Wrap(err, "invalid session")
	}

	data, err := json.Marshal(session)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal session")
	}

	key := r.key(sessionKeyspace, session.ID.String())
	if err := r.client.Set(ctx, key, data, ttlUntil(session.ExpiresAt)).Err(); err != nil {
		return goerr.Wrap(err, "failed to put session to redis", goerr.V("sessionID", session.ID))
	}

	return nil
}

func (r *Redis) GetSession(ctx context.Context, sessionID types.SessionID) (*auth.Session, error) {
	if err := sessionID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid session ID")
	}

	key := r.key(sessionKeyspace, sessionID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, goerr.Wrap(ErrNotFound, "session not found", goerr.V("sessionID", sessionID))
		}
		return nil, goerr.Wrap(err, "failed to get session from redis", goerr.V("sessionID", sessionID))
	}

	var session auth.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal session")
	}

	return &session, nil
}

func (r *Redis) DeleteSession(ctx context.Context, sessionID types.SessionID) error {
	if err := sessionID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid session ID")
	}

	key := r.key(sessionKeyspace, sessionID.String())
	deleted, err := r.client.Del(ctx, key).Result()
	if err != nil {
		return goerr.Wrap(err, "failed to delete session from redis", goerr.V("sessionID", sessionID))
	}
	if deleted == 0 {
		return goerr.Wrap(ErrNotFound, "session not found", goerr.V("sessionID", sessionID))
	}

	return nil
}
