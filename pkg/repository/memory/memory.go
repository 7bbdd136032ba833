package memory

import (
	"github.com/roomlab/roomboard/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = interfaces.ErrNotFound

// Memory is an in-memory Repository for development and tests.
type Memory struct {
	sessions    *sessionStore
	credentials *credentialStore
	authStates  *authStateStore
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		sessions:    newSessionStore(),
		credentials: newCredentialStore(),
		authStates:  newAuthStateStore(),
	}
}

func (r *Memory) Close() error {
	return nil
}
