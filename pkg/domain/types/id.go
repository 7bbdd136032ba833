package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// UserID is the stable subject identifier from a verified Google identity
// token.
type UserID string

// Validate checks if the UserID is valid
func (u UserID) Validate() error {
	if u == "" {
		return goerr.New("user ID cannot be empty")
	}
	return nil
}

// String returns the string representation of UserID
func (u UserID) String() string {
	return string(u)
}

// SessionID identifies a browser session record.
type SessionID string

// NewSessionID generates a new random SessionID
func NewSessionID() SessionID {
	return SessionID(uuid.New().String())
}

// Validate checks if the SessionID is valid
func (s SessionID) Validate() error {
	if s == "" {
		return goerr.New("session ID cannot be empty")
	}
	return nil
}

// String returns the string representation of SessionID
func (s SessionID) String() string {
	return string(s)
}

// SessionSecret is the bearer half of a session cookie pair.
type SessionSecret string

// NewSessionSecret generates a new random SessionSecret
func NewSessionSecret() SessionSecret {
	return SessionSecret(uuid.New().String())
}

// Validate checks if the SessionSecret is valid
func (s SessionSecret) Validate() error {
	if s == "" {
		return goerr.New("session secret cannot be empty")
	}
	return nil
}

// String returns the string representation of SessionSecret
func (s SessionSecret) String() string {
	return string(s)
}
