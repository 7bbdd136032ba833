package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/roomlab/roomboard/pkg/domain/interfaces"
	"github.com/roomlab/roomboard/pkg/domain/model/auth"
	"github.com/roomlab/roomboard/pkg/domain/types"
)

func runSessionRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Run("PutSession and GetSession", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		session := auth.NewSession("user-123", "test@example.com")

		if err := repo.PutSession(ctx, session); err != nil {
			t.Fatalf("PutSession failed: %v", err)
		}

		retrieved, err := repo.GetSession(ctx, session.ID)
		if err != nil {
			t.Fatalf("GetSession failed: %v", err)
		}

		if retrieved.ID != session.ID {
			t.Errorf("ID mismatch: got %v, want %v", retrieved.ID, session.ID)
		}
		if retrieved.Secret != session.Secret {
			t.Errorf("Secret mismatch: got %v, want %v", retrieved.Secret, session.Secret)
		}
		if retrieved.UserID != session.UserID {
			t.Errorf("UserID mismatch: got %v, want %v", retrieved.UserID, session.UserID)
		}
		if retrieved.Email != session.Email {
			t.Errorf("Email mismatch: got %v, want %v", retrieved.Email, session.Email)
		}

		// Compare timestamps with tolerance for backend precision
		if diff := retrieved.ExpiresAt.Sub(session.ExpiresAt); diff > time.Second || diff < -time.Second {
			t.Errorf("ExpiresAt mismatch: got %v, want %v, diff %v", retrieved.ExpiresAt, session.ExpiresAt, diff)
		}
		if diff := retrieved.CreatedAt.Sub(session.CreatedAt); diff > time.Second || diff < -time.Second {
			t.Errorf("CreatedAt mismatch: got %v, want %v, diff %v", retrieved.CreatedAt, session.CreatedAt, diff)
		}
	})

	t.Run("GetSession not found", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.GetSession(ctx, types.NewSessionID())
		if err == nil {
			t.Fatal("Expected error for non-existent session, got nil")
		}
		if !errors.Is(err, interfaces.ErrNotFound) {
			t.Errorf("Expected NotFound error, got: %v", err)
		}
	})

	t.Run("DeleteSession", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		session := auth.NewSession("user-456", "delete@example.com")

		if err := repo.PutSession(ctx, session); err != nil {
			t.Fatalf("PutSession failed: %v", err)
		}
		if err := repo.DeleteSession(ctx, session.ID); err != nil {
			t.Fatalf("DeleteSession failed: %v", err)
		}

		_, err := repo.GetSession(ctx, session.ID)
		if err == nil {
			t.Fatal("Expected error after deletion, got nil")
		}
		if !errors.Is(err, interfaces.ErrNotFound) {
			t.Errorf("Expected NotFound error after deletion, got: %v", err)
		}
	})

	t.Run("DeleteSession not found", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		err := repo.DeleteSession(ctx, types.NewSessionID())
		if err == nil {
			t.Fatal("Expected error for deleting non-existent session, got nil")
		}
		if !errors.Is(err, interfaces.ErrNotFound) {
			t.Errorf("Expected NotFound error, got: %v", err)
		}
	})

	t.Run("Session validation on Put", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		invalid := &auth.Session{
			ID:        types.NewSessionID(),
			Secret:    types.NewSessionSecret(),
			UserID:    "", // Invalid: empty
			Email:     "test@example.com",
			CreatedAt: time.Now(),
			ExpiresAt: time.Now().Add(time.Hour),
		}

		if err := repo.PutSession(ctx, invalid); err == nil {
			t.Fatal("Expected validation error for invalid session, got nil")
		}
	})

	t.Run("Put overwrites existing session", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		session := auth.NewSession("user-789", "first@example.com")
		if err := repo.PutSession(ctx, session); err != nil {
			t.Fatalf("PutSession failed: %v", err)
		}

		updated := *session
		updated.Email = "second@example.com"
		if err := repo.PutSession(ctx, &updated); err != nil {
			t.Fatalf("PutSession overwrite failed: %v", err)
		}

		retrieved, err := repo.GetSession(ctx, session.ID)
		if err != nil {
			t.Fatalf("GetSession failed: %v", err)
		}
		if retrieved.Email != "second@example.com" {
			t.Errorf("Email mismatch after overwrite: got %v", retrieved.Email)
		}
	})
}
