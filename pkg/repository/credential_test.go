package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"github.com/roomlab/roomboard/pkg/domain/interfaces"
	"github.com/roomlab/roomboard/pkg/domain/model"
)

func runCredentialRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	const calendarScope = "https://www.googleapis.com/auth/calendar.readonly"

	newToken := func() *oauth2.Token {
		return &oauth2.Token{
			AccessToken:  "access-token-value",
			RefreshToken: "refresh-token-value",
			TokenType:    "Bearer",
			Expiry:       time.Now().Add(time.Hour).UTC(),
		}
	}

	t.Run("PutCredential and GetCredential", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		cred := model.NewCredential("user-123", calendarScope, newToken())

		if err := repo.PutCredential(ctx, cred); err != nil {
			t.Fatalf("PutCredential failed: %v", err)
		}

		retrieved, err := repo.GetCredential(ctx, cred.UserID, cred.Scope)
		if err != nil {
			t.Fatalf("GetCredential failed: %v", err)
		}

		if retrieved.UserID != cred.UserID {
			t.Errorf("UserID mismatch: got %v, want %v", retrieved.UserID, cred.UserID)
		}
		if retrieved.Scope != cred.Scope {
			t.Errorf("Scope mismatch: got %v, want %v", retrieved.Scope, cred.Scope)
		}
		if retrieved.AccessToken != cred.AccessToken {
			t.Errorf("AccessToken mismatch: got %v, want %v", retrieved.AccessToken, cred.AccessToken)
		}
		if retrieved.RefreshToken != cred.RefreshToken {
			t.Errorf("RefreshToken mismatch: got %v, want %v", retrieved.RefreshToken, cred.RefreshToken)
		}
		if retrieved.TokenType != cred.TokenType {
			t.Errorf("TokenType mismatch: got %v, want %v", retrieved.TokenType, cred.TokenType)
		}
		if diff := retrieved.Expiry.Sub(cred.Expiry); diff > time.Second || diff < -time.Second {
			t.Errorf("Expiry mismatch: got %v, want %v, diff %v", retrieved.Expiry, cred.Expiry, diff)
		}
	})

	t.Run("Credentials are keyed by user and scope", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		calCred := model.NewCredential("user-multi", calendarScope, newToken())
		otherToken := newToken()
		otherToken.AccessToken = "other-access-token"
		otherCred := model.NewCredential("user-multi", "https://www.googleapis.com/auth/drive.readonly", otherToken)

		if err := repo.PutCredential(ctx, calCred); err != nil {
			t.Fatalf("PutCredential failed: %v", err)
		}
		if err := repo.PutCredential(ctx, otherCred); err != nil {
			t.Fatalf("PutCredential failed: %v", err)
		}

		retrieved, err := repo.GetCredential(ctx, "user-multi", calendarScope)
		if err != nil {
			t.Fatalf("GetCredential failed: %v", err)
		}
		if retrieved.AccessToken != calCred.AccessToken {
			t.Errorf("Wrong credential returned: got access token %v", retrieved.AccessToken)
		}

		// Another user under the same scope is a separate record
		_, err = repo.GetCredential(ctx, "user-other", calendarScope)
		if !errors.Is(err, interfaces.ErrNotFound) {
			t.Errorf("Expected NotFound for another user, got: %v", err)
		}
	})

	t.Run("Put overwrites existing credential", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		cred := model.NewCredential("user-refresh", calendarScope, newToken())
		if err := repo.PutCredential(ctx, cred); err != nil {
			t.Fatalf("PutCredential failed: %v", err)
		}

		rotated := newToken()
		rotated.AccessToken = "rotated-access-token"
		if err := repo.PutCredential(ctx, model.NewCredential("user-refresh", calendarScope, rotated)); err != nil {
			t.Fatalf("PutCredential overwrite failed: %v", err)
		}

		retrieved, err := repo.GetCredential(ctx, "user-refresh", calendarScope)
		if err != nil {
			t.Fatalf("GetCredential failed: %v", err)
		}
		if retrieved.AccessToken != "rotated-access-token" {
			t.Errorf("AccessToken mismatch after overwrite: got %v", retrieved.AccessToken)
		}
	})

	t.Run("GetCredential not found", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.GetCredential(ctx, "nobody", calendarScope)
		if err == nil {
			t.Fatal("Expected error for non-existent credential, got nil")
		}
		if !errors.Is(err, interfaces.ErrNotFound) {
			t.Errorf("Expected NotFound error, got: %v", err)
		}
	})

	t.Run("DeleteCredential", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		cred := model.NewCredential("user-delete", calendarScope, newToken())
		if err := repo.PutCredential(ctx, cred); err != nil {
			t.Fatalf("PutCredential failed: %v", err)
		}
		if err := repo.DeleteCredential(ctx, cred.UserID, cred.Scope); err != nil {
			t.Fatalf("DeleteCredential failed: %v", err)
		}

		_, err := repo.GetCredential(ctx, cred.UserID, cred.Scope)
		if !errors.Is(err, interfaces.ErrNotFound) {
			t.Errorf("Expected NotFound error after deletion, got: %v", err)
		}
	})

	t.Run("Credential validation on Put", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		invalid := &model.Credential{
			UserID:    "user-invalid",
			Scope:     calendarScope,
			UpdatedAt: time.Now(),
			// Invalid: no tokens at all
		}

		if err := repo.PutCredential(ctx, invalid); err == nil {
			t.Fatal("Expected validation error for tokenless credential, got nil")
		}
	})
}
