package usecase_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const testClientID = "test-client-id.apps.googleusercontent.com"

// testSigner holds a locally generated RSA key pair standing in for
// Google's rotating signing keys.
type testSigner struct {
	private jwk.Key
	keySet  jwk.Set
}

func newTestSigner(t *testing.T) *testSigner {
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

	return &testSigner{private: private, keySet: keySet}
}

// KeySetFunc plugs the local keys into UseCases via WithKeySet.
func (s *testSigner) KeySetFunc(ctx context.Context) (jwk.Set, error) {
	return s.keySet, nil
}

type idTokenSpec struct {
	issuer   string
	audience string
	subject  string
	email    string
	expiry   time.Time
}

func defaultIDToken() idTokenSpec {
	return idTokenSpec{
		issuer:   "https://accounts.google.com",
		audience: testClientID,
		subject:  "110248495921238986420",
		email:    "user@example.com",
		expiry:   time.Now().Add(time.Hour),
	}
}

// SignIDToken builds and signs an identity token with the given claims.
func (s *testSigner) SignIDToken(t *testing.T, spec idTokenSpec) string {
	t.Helper()

	builder := jwt.NewBuilder().
		Issuer(spec.issuer).
		Subject(spec.subject).
		Audience([]string{spec.audience}).
		IssuedAt(time.Now().Add(-time.Minute)).
		Expiration(spec.expiry)
	if spec.email != "" {
		builder = builder.Claim("email", spec.email)
	}

	token, err := builder.Build()
	if err != nil {
		t.Fatalf("failed to build token: %v", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.RS256, s.private))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return string(signed)
}
