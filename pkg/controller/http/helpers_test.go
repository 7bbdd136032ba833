package http_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"golang.org/x/oauth2"

	httpctrl "github.com/roomlab/roomboard/pkg/controller/http"
	"github.com/roomlab/roomboard/pkg/domain/model"
	"github.com/roomlab/roomboard/pkg/domain/model/auth"
	"github.com/roomlab/roomboard/pkg/repository/memory"
	"github.com/roomlab/roomboard/pkg/usecase"
)

const testClientID = "test-client-id.apps.googleusercontent.com"

var testRoom = model.Room{
	ID:         "test",
	Name:       "Test Meeting Room",
	CalendarID: "test@resource.calendar.google.com",
	Timezone:   "Europe/Budapest",
}

// newSignedIDToken generates a key pair, signs an identity token for
// user-123 and returns the token with a key set lookup for WithKeySet.
func newSignedIDToken(t *testing.T) (string, func(ctx context.Context) (jwk.Set, error)) {
	t.Helper()

	raw, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate RSA key: %v", err)
	}
	private, err := jwk.FromRaw(raw)
	if err != nil {
		t.Fatalf("failed to wrap private key: %v", err)
	}
	if err := private.Set(jwk.KeyIDKey, "test-key-1"); err != nil {
		t.Fatalf("failed to set kid: %v", err)
	}
	if err := private.Set(jwk.AlgorithmKey, jwa.RS256); err != nil {
		t.Fatalf("failed to set alg: %v", err)
	}
	public, err := private.PublicKey()
	if err != nil {
		t.Fatalf("failed to derive public key: %v", err)
	}
	keySet := jwk.NewSet()
	if err := keySet.AddKey(public); err != nil {
		t.Fatalf("failed to add key to set: %v", err)
	}

	token, err := jwt.NewBuilder().
		Issuer("https://accounts.google.com").
		Subject("user-123").
		Audience([]string{testClientID}).
		IssuedAt(time.Now().Add(-time.Minute)).
		Expiration(time.Now().Add(time.Hour)).
		Claim("email", "user@example.com").
		Build()
	if err != nil {
		t.Fatalf("failed to build token: %v", err)
	}
	signed, err := jwt.Sign(token, jwt.WithKey(jwa.RS256, private))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	return string(signed), func(ctx context.Context) (jwk.Set, error) {
		return keySet, nil
	}
}

// emptyKeySet makes every identity token fail verification.
func emptyKeySet(ctx context.Context) (jwk.Set, error) {
	return jwk.NewSet(), nil
}

func testOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     testClientID,
		ClientSecret: "test-client-secret",
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://accounts.google.com/o/oauth2/auth",
			TokenURL: "https://oauth2.googleapis.com/token",
		},
		RedirectURL: "http://localhost:8080/oauth2callback",
		Scopes:      []string{usecase.CalendarScope.String()},
	}
}

// seedSession stores a signed-in session and returns it with its cookies.
func seedSession(t *testing.T, repo *memory.Memory) (*auth.Session, []*http.Cookie) {
	t.Helper()

	session := auth.NewSession("user-123", "user@example.com")
	if err := repo.PutSession(context.Background(), session); err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}

	cookies := []*http.Cookie{
		{Name: "session_id", Value: session.ID.String()},
		{Name: "session_secret", Value: session.Secret.String()},
	}
	return session, cookies
}

// seedCredential stores a usable calendar credential for the user.
func seedCredential(t *testing.T, repo *memory.Memory, session *auth.Session) {
	t.Helper()

	cred := model.NewCredential(session.UserID, usecase.CalendarScope, &oauth2.Token{
		AccessToken:  "stored-access-token",
		RefreshToken: "stored-refresh-token",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour),
	})
	if err := repo.PutCredential(context.Background(), cred); err != nil {
		t.Fatalf("failed to seed credential: %v", err)
	}
}

func newTestServer(t *testing.T, repo *memory.Memory, ucOpts ...usecase.Option) *httpctrl.Server {
	t.Helper()

	opts := append([]usecase.Option{usecase.WithOAuthConfig(testOAuthConfig())}, ucOpts...)
	return newServerFor(t, usecase.New(repo, testClientID, opts...))
}

func newServerFor(t *testing.T, uc *usecase.UseCases) *httpctrl.Server {
	t.Helper()

	return httpctrl.New(uc, testClientID, httpctrl.WithRooms([]model.Room{testRoom}))
}
