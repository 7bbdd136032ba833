package usecase

import (
	"context"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"

	"github.com/roomlab/roomboard/pkg/domain/interfaces"
	"github.com/roomlab/roomboard/pkg/domain/types"
)

// CalendarScope is the access scope requested for reading room calendars.
const CalendarScope = types.Scope(gcal.CalendarReadonlyScope)

// UseCases bundles the application logic: identity verification and
// sessions, authorization resolution, and dashboard payload construction.
type UseCases struct {
	repo     interfaces.Repository
	calendar interfaces.CalendarSource
	oauth    *oauth2.Config
	clientID string
	keys     keySetFunc
	cache    *sessionCache
}

// Option is a functional option for UseCases
type Option func(*UseCases)

// WithCalendarSource sets the calendar backend.
func WithCalendarSource(src interfaces.CalendarSource) Option {
	return func(uc *UseCases) {
		uc.calendar = src
	}
}

// WithOAuthConfig sets the OAuth2 authorization-code flow configuration.
func WithOAuthConfig(cfg *oauth2.Config) Option {
	return func(uc *UseCases) {
		uc.oauth = cfg
	}
}

// WithKeySet overrides the identity-provider key set lookup. Tests use this
// to verify against locally generated keys.
func WithKeySet(fn func(ctx context.Context) (jwk.Set, error)) Option {
	return func(uc *UseCases) {
		uc.keys = fn
	}
}

func New(repo interfaces.Repository, clientID string, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:     repo,
		clientID: clientID,
		keys:     fetchGoogleKeys,
		cache:    newSessionCache(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}
