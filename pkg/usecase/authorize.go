package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/oauth2"

	"github.com/roomlab/roomboard/pkg/domain/interfaces"
	"github.com/roomlab/roomboard/pkg/domain/model"
	"github.com/roomlab/roomboard/pkg/domain/model/auth"
	"github.com/roomlab/roomboard/pkg/domain/types"
	"github.com/roomlab/roomboard/pkg/utils/logging"
)

// ErrStateNotFound is returned when an OAuth callback carries a state nonce
// with no pending authorization behind it. A replayed callback lands here
// instead of a second, rejected code redemption.
var ErrStateNotFound = goerr.New("pending authorization not found")

// AuthzStatus tags the outcome of authorization resolution.
type AuthzStatus int

const (
	// Authorized means usable credentials exist for the requested scope.
	Authorized AuthzStatus = iota
	// NeedsLogin means there is no signed-in user; redirect to the login
	// page.
	NeedsLogin
	// NeedsConsent means the user must grant access; redirect to the
	// provider's consent screen.
	NeedsConsent
)

// Authorization is the tagged result of CredentialsFor. Callers switch on
// Status instead of relying on redirect side effects.
type Authorization struct {
	Status      AuthzStatus
	TokenSource oauth2.TokenSource
	RedirectURL string
}

// Credentials resolves credentials of the session's user for the given
// scope without side effects. Absence of a user or of usable credentials is
// signaled through the Status field, never as an error; a NeedsConsent
// result carries no redirect URL and records no pending authorization.
func (uc *UseCases) Credentials(ctx context.Context, session *auth.Session, scope types.Scope) (*Authorization, error) {
	if session == nil {
		return &Authorization{Status: NeedsLogin, RedirectURL: "/"}, nil
	}

	cred, err := uc.repo.GetCredential(ctx, session.UserID, scope)
	if err != nil && !isNotFound(err) {
		return nil, goerr.Wrap(err, "failed to get credential", goerr.V("userID", session.UserID))
	}

	if cred == nil || !cred.Usable() {
		return &Authorization{Status: NeedsConsent}, nil
	}

	return &Authorization{
		Status:      Authorized,
		TokenSource: uc.tokenSource(ctx, cred),
	}, nil
}

// CredentialsFor resolves like Credentials, and additionally starts a
// consent round trip when one is needed: a pending authorization is stored
// and the result carries the consent URL. returnTo is where the browser
// should land after the round trip.
func (uc *UseCases) CredentialsFor(ctx context.Context, session *auth.Session, scope types.Scope, returnTo string) (*Authorization, error) {
	authz, err := uc.Credentials(ctx, session, scope)
	if err != nil || authz.Status != NeedsConsent {
		return authz, err
	}

	consentURL, err := uc.beginConsent(ctx, session.UserID, scope, returnTo)
	if err != nil {
		return nil, err
	}
	authz.RedirectURL = consentURL
	return authz, nil
}

// beginConsent records a pending authorization and builds the consent URL.
// The user id rides along as a login hint so the provider pre-selects the
// right account.
func (uc *UseCases) beginConsent(ctx context.Context, userID types.UserID, scope types.Scope, returnTo string) (string, error) {
	if uc.oauth == nil {
		return "", goerr.New("OAuth configuration is missing")
	}

	state := model.NewAuthState(userID, scope, returnTo)
	if err := uc.repo.PutAuthState(ctx, state); err != nil {
		return "", goerr.Wrap(err, "failed to store pending authorization", goerr.V("userID", userID))
	}

	return uc.oauth.AuthCodeURL(state.State,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("login_hint", userID.String()),
	), nil
}

// HandleCallback redeems the authorization code of a consent redirect,
// persists the credential keyed by (user id, scope) and returns the URL the
// browser should be sent back to.
func (uc *UseCases) HandleCallback(ctx context.Context, state, code string) (string, error) {
	pending, err := uc.repo.GetAuthState(ctx, state)
	if err != nil {
		if isNotFound(err) {
			return "", goerr.Wrap(ErrStateNotFound, "no pending authorization for state")
		}
		return "", goerr.Wrap(err, "failed to get pending authorization")
	}
	if pending.IsExpired() {
		return "", goerr.Wrap(ErrStateNotFound, "pending authorization expired")
	}

	token, err := uc.oauth.Exchange(ctx, code)
	if err != nil {
		return "", goerr.Wrap(err, "failed to exchange authorization code", goerr.V("userID", pending.UserID))
	}

	cred := model.NewCredential(pending.UserID, pending.Scope, token)
	if err := uc.repo.PutCredential(ctx, cred); err != nil {
		return "", goerr.Wrap(err, "failed to store credential", goerr.V("userID", pending.UserID))
	}

	// Best effort: a leftover state only means a replay redirects home.
	if err := uc.repo.DeleteAuthState(ctx, state); err != nil {
		logging.From(ctx).Warn("failed to delete pending authorization", "error", err)
	}

	return pending.ReturnTo, nil
}

// tokenSource wraps the stored credential in a refreshing token source that
// writes rotated tokens back to the repository.
func (uc *UseCases) tokenSource(ctx context.Context, cred *model.Credential) oauth2.TokenSource {
	base := uc.oauth.TokenSource(ctx, cred.Token())
	return &persistingTokenSource{
		ctx:  ctx,
		uc:   uc,
		cred: cred,
		base: oauth2.ReuseTokenSource(cred.Token(), base),
	}
}

type persistingTokenSource struct {
	ctx  context.Context
	uc   *UseCases
	cred *model.Credential
	base oauth2.TokenSource
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.base.Token()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to obtain access token", goerr.V("userID", s.cred.UserID))
	}

	if token.AccessToken != s.cred.AccessToken {
		refreshed := model.NewCredential(s.cred.UserID, s.cred.Scope, token)
		if refreshed.RefreshToken == "" {
			refreshed.RefreshToken = s.cred.RefreshToken
		}
		if err := s.uc.repo.PutCredential(s.ctx, refreshed); err != nil {
			logging.From(s.ctx).Warn("failed to persist refreshed credential", "error", err)
		} else {
			s.cred = refreshed
		}
	}

	return token, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, interfaces.ErrNotFound)
}
