package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/roomlab/roomboard/pkg/domain/model"
	"github.com/roomlab/roomboard/pkg/domain/types"
)

// credentialKey is a composite key for stored credentials (user id + scope)
type credentialKey struct {
	userID types.UserID
	scope  types.Scope
}

type credentialStore struct {
	mu          sync.RWMutex
	credentials map[credentialKey]*model.Credential
}

func newCredentialStore() *credentialStore {
	return &credentialStore{
		credentials: make(map[credentialKey]*model.Credential),
	}
}

func copyCredential(c *model.Credential) *model.Credential {
	copied := *c
	return &copied
}

func (r *Memory) PutCredential(ctx context.Context, cred *model.Credential) error {
	if err := cred.Validate(); err != nil {
		return goerr.Wrap(err, "invalid credential")
	}

	r.credentials.mu.Lock()
	defer r.credentials.mu.Unlock()

	key := credentialKey{userID: cred.UserID, scope: cred.Scope}
	r.credentials.credentials[key] = copyCredential(cred)
	return nil
}

func (r *Memory) GetCredential(ctx context.Context, userID types.UserID, scope types.Scope) (*model.Credential, error) {
	if err := userID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid user ID")
	}
	if err := scope.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid scope")
	}

	r.credentials.mu.RLock()
	defer r.credentials.mu.RUnlock()

	key := credentialKey{userID: userID, scope: scope}
	cred, ok := r.credentials.credentials[key]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "credential not found", goerr.V("userID", userID), goerr.V("scope", scope))
	}

	return copyCredential(cred), nil
}

func (r *Memory) DeleteCredential(ctx context.Context, userID types.UserID, scope types.Scope) error {
	if err := userID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid user ID")
	}
	if err := scope.Validate(); err != nil {
		return goerr.Wrap(err, "invalid scope")
	}

	r.credentials.mu.Lock()
	defer r.credentials.mu.Unlock()

	key := credentialKey{userID: userID, scope: scope}
	if _, ok := r.credentials.credentials[key]; !ok {
		return goerr.Wrap(ErrNotFound, "credential not found", goerr.V("userID", userID), goerr.V("scope", scope))
	}

	delete(r.credentials.credentials, key)
	return nil
}
