package usecase

import (
	"context"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/goerr/v2"

	"github.com/roomlab/roomboard/pkg/domain/model/auth"
	"github.com/roomlab/roomboard/pkg/domain/types"
)

const googleJWKSURL = "https://www.googleapis.com/oauth2/v3/certs"

// Google signs ID tokens under either issuer form depending on the client.
var googleIssuers = []string{"https://accounts.google.com", "accounts.google.com"}

// ErrInvalidIDToken is returned when an identity assertion fails
// verification
var ErrInvalidIDToken = goerr.New("invalid identity token")

type keySetFunc func(ctx context.Context) (jwk.Set, error)

func fetchGoogleKeys(ctx context.Context) (jwk.Set, error) {
	keySet, err := jwk.Fetch(ctx, googleJWKSURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch Google's public keys", goerr.V("jwks_uri", googleJWKSURL))
	}
	return keySet, nil
}

// IDTokenClaims is the verified claim set of a Google identity token.
type IDTokenClaims struct {
	Sub   types.UserID
	Email string
}

// VerifyIDToken checks the signature, expiry, audience and issuer of an
// identity assertion against Google's rotating public keys. The audience
// must equal this application's OAuth client id.
func (uc *UseCases) VerifyIDToken(ctx context.Context, idToken string) (*IDTokenClaims, error) {
	keySet, err := uc.keys(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load identity provider keys")
	}

	// 10 seconds of acceptable skew covers clock drift between hosts.
	token, err := jwt.Parse([]byte(idToken),
		jwt.WithKeySet(keySet),
		jwt.WithValidate(true),
		jwt.WithAudience(uc.clientID),
		jwt.WithAcceptableSkew(10*time.Second),
	)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidIDToken, err.Error())
	}

	issuerOK := false
	for _, iss := range googleIssuers {
		if token.Issuer() == iss {
			issuerOK = true
			break
		}
	}
	if !issuerOK {
		return nil, goerr.Wrap(ErrInvalidIDToken, "unexpected issuer", goerr.V("issuer", token.Issuer()))
	}

	sub := token.Subject()
	if sub == "" {
		return nil, goerr.Wrap(ErrInvalidIDToken, "sub claim not found in token")
	}

	email, _ := token.Get("email")
	emailStr, ok := email.(string)
	if !ok || emailStr == "" {
		return nil, goerr.Wrap(ErrInvalidIDToken, "email claim not found in token")
	}

	return &IDTokenClaims{
		Sub:   types.UserID(sub),
		Email: emailStr,
	}, nil
}

// SignIn verifies an identity assertion and opens a session for the
// verified subject. Failed verification leaves no session state behind.
func (uc *UseCases) SignIn(ctx context.Context, idToken string) (*auth.Session, error) {
	claims, err := uc.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}

	session := auth.NewSession(claims.Sub, claims.Email)
	if err := uc.repo.PutSession(ctx, session); err != nil {
		return nil, goerr.Wrap(err, "failed to store session", goerr.V("userID", claims.Sub))
	}
	uc.cache.set(session)

	return session, nil
}

// ValidateSession resolves the session behind a cookie pair.
func (uc *UseCases) ValidateSession(ctx context.Context, sessionID types.SessionID, secret types.SessionSecret) (*auth.Session, error) {
	if session, ok := uc.cache.get(sessionID); ok {
		if session.Secret != secret {
			return nil, goerr.New("invalid session secret")
		}
		if session.IsExpired() {
			uc.cache.remove(sessionID)
			return nil, goerr.New("session expired")
		}
		return session, nil
	}

	session, err := uc.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get session from repository")
	}

	if session.Secret != secret {
		return nil, goerr.New("invalid session secret")
	}
	if session.IsExpired() {
		if err := uc.repo.DeleteSession(ctx, sessionID); err != nil {
			return nil, goerr.Wrap(err, "failed to delete expired session", goerr.V("sessionID", sessionID))
		}
		return nil, goerr.New("session expired")
	}

	uc.cache.set(session)
	return session, nil
}

// Logout deletes a session.
func (uc *UseCases) Logout(ctx context.Context, sessionID types.SessionID) error {
	uc.cache.remove(sessionID)
	return uc.repo.DeleteSession(ctx, sessionID)
}
