package interfaces

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/roomlab/roomboard/pkg/domain/model"
	"github.com/roomlab/roomboard/pkg/domain/model/auth"
	"github.com/roomlab/roomboard/pkg/domain/types"
)

// ErrNotFound is the canonical not-found error shared by all repository
// backends; match it with errors.Is.
var ErrNotFound = goerr.New("record not found")

// Repository is the keyed persistence layer behind sessions, stored OAuth
// credentials and pending authorization states.
type Repository interface {
	// Session methods
	PutSession(ctx context.Context, session *auth.Session) error
	GetSession(ctx context.Context, sessionID types.SessionID) (*auth.Session, error)
	DeleteSession(ctx context.Context, sessionID types.SessionID) error

	// Credential methods, keyed by (user id, scope)
	PutCredential(ctx context.Context, cred *model.Credential) error
	GetCredential(ctx context.Context, userID types.UserID, scope types.Scope) (*model.Credential, error)
	DeleteCredential(ctx context.Context, userID types.UserID, scope types.Scope) error

	// Pending authorization methods, keyed by state nonce
	PutAuthState(ctx context.Context, state *model.AuthState) error
	GetAuthState(ctx context.Context, state string) (*model.AuthState, error)
	DeleteAuthState(ctx context.Context, state string) error

	Close() error
}
