package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/roomlab/roomboard/pkg/domain/model"
)

type authStateStore struct {
	mu     sync.RWMutex
	states map[string]*model.AuthState
}

func newAuthStateStore() *authStateStore {
	return &authStateStore{
		states: make(map[string]*model.AuthState),
	}
}

func copyAuthState(a *model.AuthState) *model.AuthState {
	copied := *a
	return &copied
}

func (r *Memory) PutAuthState(ctx context.Context, state *model.AuthState) error {
	if err := state.Validate(); err != nil {
		return goerr.Wrap(err, "invalid auth state")
	}

	r.authStates.mu.Lock()
	defer r.authStates.mu.Unlock()

	r.authStates.states[state.State] = copyAuthState(state)
	return nil
}

func (r *Memory) GetAuthState(ctx context.Context, state string) (*model.AuthState, error) {
	if state == "" {
		return nil, goerr.New("auth state nonce cannot be empty")
	}

	r.authStates.mu.RLock()
	defer r.authStates.mu.RUnlock()

	record, ok := r.authStates.states[state]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "auth state not found")
	}

	return copyAuthState(record), nil
}

func (r *Memory) DeleteAuthState(ctx context.Context, state string) error {
	if state == "" {
		return goerr.New("auth state nonce cannot be empty")
	}

	r.authStates.mu.Lock()
	defer r.authStates.mu.Unlock()

	if _, ok := r.authStates.states[state]; !ok {
		return goerr.Wrap(ErrNotFound, "auth state not found")
	}

	delete(r.authStates.states, state)
	return nil
}
