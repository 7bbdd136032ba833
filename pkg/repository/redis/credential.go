package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/go-redis/redis/v8"
	"github.com/m-mizutani/goerr/v2"

	"github.com/roomlab/roomboard/pkg/domain/model"
	"github.com/roomlab/roomboard/pkg/domain/types"
)

const credentialKeyspace = "credential"

func (r *Redis) PutCredential(ctx context.Context, cred *model.Credential) error {
	if err := cred.Validate(); err != nil {
		return goerr.Wrap(err, "invalid credential")
	}

	data, err := json.Marshal(cred)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal credential")
	}

	key := r.key(credentialKeyspace, cred.UserID.String(), cred.Scope.String())
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return goerr.Wrap(err, "failed to put credential to redis", goerr.V("userID", cred.UserID))
	}

	return nil
}

func (r *Redis) GetCredential(ctx context.Context, userID types.UserID, scope types.Scope) (*model.Credential, error) {
	if err := userID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid user ID")
	}
	if err := scope.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid scope")
	}

	key := r.key(credentialKeyspace, userID.String(), scope.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, goerr.Wrap(ErrNotFound, "credential not found", goerr.V("userID", userID), goerr.V("scope", scope))
		}
		return nil, goerr.Wrap(err, "failed to get credential from redis", goerr.V("userID", userID))
	}

	var cred model.Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal credential")
	}

	return &cred, nil
}

func (r *Redis) DeleteCredential(ctx context.Context, userID types.UserID, scope types.Scope) error {
	if err := userID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid user ID")
	}
	if err := scope.Validate(); err != nil {
		return goerr.Wrap(err, "invalid scope")
	}

	key := r.key(credentialKeyspace, userID.String(), scope.String())
	deleted, err := r.client.Del(ctx, key).Result()
	if err != nil {
		return goerr.Wrap(err, "failed to delete credential from redis", goerr.V("userID", userID))
	}
	if deleted == 0 {
		return goerr.Wrap(ErrNotFound, "credential not found", goerr.V("userID", userID), goerr.V("scope", scope))
	}

	return nil
}
