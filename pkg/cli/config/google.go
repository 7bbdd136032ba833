package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/roomlab/roomboard/pkg/usecase"
)

// Google holds CLI flags for the Google OAuth client
type Google struct {
	clientID     string
	clientSecret string
}

// Flags returns CLI flags for Google OAuth configuration
func (g *Google) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "google-client-id",
			Usage:       "Google OAuth client ID",
			Category:    "Google",
			Sources:     cli.EnvVars("GOOGLE_CLIENT_ID"),
			Destination: &g.clientID,
		},
		&cli.StringFlag{
			Name:        "google-client-secret",
			Usage:       "Google OAuth client secret",
			Category:    "Google",
			Sources:     cli.EnvVars("GOOGLE_CLIENT_SECRET"),
			Destination: &g.clientSecret,
		},
	}
}

func (g Google) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("client-id", g.clientID),
		slog.Int("client-secret.len", len(g.clientSecret)),
	)
}

// ClientID returns the OAuth client ID, which is also the expected audience
// of identity tokens.
func (g *Google) ClientID() string {
	return g.clientID
}

// Configure builds the OAuth2 authorization-code flow configuration.
func (g *Google) Configure(baseURL string) (*oauth2.Config, error) {
	if g.clientID == "" || g.clientSecret == "" {
		return nil, goerr.New("Google OAuth configuration is required: set --google-client-id and --google-client-secret")
	}
	if baseURL == "" {
		return nil, goerr.New("base URL is required to build the OAuth redirect URL")
	}

	return &oauth2.Config{
		ClientID:     g.clientID,
		ClientSecret: g.clientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  baseURL + "/oauth2callback",
		Scopes:       []string{usecase.CalendarScope.String()},
	}, nil
}
