package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/roomlab/roomboard/pkg/domain/types"
)

const authStateTTL = 10 * time.Minute

// AuthState is a pending authorization record keyed by the OAuth state
// nonce. Keeping it server-side means the consent round trip does not depend
// on cookie-session continuity: if the browser replays the callback after an
// error render, the state is simply gone and the user is sent back to the
// start instead of a second, doomed code redemption.
type AuthState struct {
	State     string       `json:"state" firestore:"state"`
	UserID    types.UserID `json:"user_id" firestore:"user_id"`
	Scope     types.Scope  `json:"scope" firestore:"scope"`
	ReturnTo  string       `json:"return_to" firestore:"return_to"`
	CreatedAt time.Time    `json:"created_at" firestore:"created_at"`
	ExpiresAt time.Time    `json:"expires_at" firestore:"expires_at"`
}

// NewAuthState creates a pending authorization record with a fresh nonce.
func NewAuthState(userID types.UserID, scope types.Scope, returnTo string) *AuthState {
	now := time.Now().UTC()
	return &AuthState{
		State:     uuid.New().String(),
		UserID:    userID,
		Scope:     scope,
		ReturnTo:  returnTo,
		CreatedAt: now,
		ExpiresAt: now.Add(authStateTTL),
	}
}

// IsExpired reports whether the pending authorization has timed out.
func (a *AuthState) IsExpired() bool {
	return time.Now().After(a.ExpiresAt)
}

// Validate checks if the AuthState is valid
func (a *AuthState) Validate() error {
	if a.State == "" {
		return goerr.New("auth state nonce cannot be empty")
	}
	if err := a.UserID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid user ID")
	}
	if err := a.Scope.Validate(); err != nil {
		return goerr.Wrap(err, "invalid scope")
	}
	return nil
}
