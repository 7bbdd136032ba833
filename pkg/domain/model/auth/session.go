package auth

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/roomlab/roomboard/pkg/domain/types"
)

const sessionTTL = 24 * time.Hour

// Session is the server-side record behind a signed-in browser. It is
// referenced by the session_id/session_secret cookie pair and stores the
// verified subject id and email from the identity token.
type Session struct {
	ID        types.SessionID     `json:"id" firestore:"id"`
	Secret    types.SessionSecret `json:"secret" firestore:"secret" masq:"secret"`
	UserID    types.UserID        `json:"user_id" firestore:"user_id"`
	Email     string              `json:"email" firestore:"email"`
	CreatedAt time.Time           `json:"created_at" firestore:"created_at"`
	ExpiresAt time.Time           `json:"expires_at" firestore:"expires_at"`
}

// NewSession creates a session for a verified identity.
func NewSession(userID types.UserID, email string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        types.NewSessionID(),
		Secret:    types.NewSessionSecret(),
		UserID:    userID,
		Email:     email,
		CreatedAt: now,
		ExpiresAt: now.Add(sessionTTL),
	}
}

// IsExpired reports whether the session has passed its expiry.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Validate checks if the Session is valid
func (s *Session) Validate() error {
	if err := s.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid session ID")
	}
	if err := s.Secret.Validate(); err != nil {
		return goerr.Wrap(err, "invalid session secret")
	}
	if err := s.UserID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid user ID")
	}
	if s.ExpiresAt.IsZero() {
		return goerr.New("session expiry is not set")
	}
	return nil
}
