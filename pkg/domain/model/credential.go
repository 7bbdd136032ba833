package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/oauth2"

	"github.com/roomlab/roomboard/pkg/domain/types"
)

// Credential is a stored OAuth grant for one user and one scope. Token
// fields are tagged secret so they never reach the logs.
type Credential struct {
	UserID       types.UserID `json:"user_id" firestore:"user_id"`
	Scope        types.Scope  `json:"scope" firestore:"scope"`
	AccessToken  string       `json:"access_token" firestore:"access_token" masq:"secret"`
	RefreshToken string       `json:"refresh_token" firestore:"refresh_token" masq:"secret"`
	TokenType    string       `json:"token_type" firestore:"token_type"`
	Expiry       time.Time    `json:"expiry" firestore:"expiry"`
	UpdatedAt    time.Time    `json:"updated_at" firestore:"updated_at"`
}

// NewCredential wraps an exchanged OAuth token for storage.
func NewCredential(userID types.UserID, scope types.Scope, token *oauth2.Token) *Credential {
	return &Credential{
		UserID:       userID,
		Scope:        scope,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		Expiry:       token.Expiry,
		UpdatedAt:    time.Now().UTC(),
	}
}

// Token converts the stored credential back to an oauth2 token.
func (c *Credential) Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  c.AccessToken,
		RefreshToken: c.RefreshToken,
		TokenType:    c.TokenType,
		Expiry:       c.Expiry,
	}
}

// Usable reports whether the credential can still produce an access token:
// either the access token is unexpired, or a refresh token allows silent
// renewal.
func (c *Credential) Usable() bool {
	if c.RefreshToken != "" {
		return true
	}
	return c.AccessToken != "" && time.Now().Before(c.Expiry)
}

// Validate checks if the Credential is valid
func (c *Credential) Validate() error {
	if err := c.UserID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid user ID")
	}
	if err := c.Scope.Validate(); err != nil {
		return goerr.Wrap(err, "invalid scope")
	}
	if c.AccessToken == "" && c.RefreshToken == "" {
		return goerr.New("credential has no tokens")
	}
	return nil
}
