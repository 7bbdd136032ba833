package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/roomlab/roomboard/pkg/domain/interfaces"
	"github.com/roomlab/roomboard/pkg/domain/model"
)

func runAuthStateRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	const calendarScope = "https://www.googleapis.com/auth/calendar.readonly"

	t.Run("PutAuthState and GetAuthState", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		state := model.NewAuthState("user-123", calendarScope, "/calendar")

		if err := repo.PutAuthState(ctx, state); err != nil {
			t.Fatalf("PutAuthState failed: %v", err)
		}

		retrieved, err := repo.GetAuthState(ctx, state.State)
		if err != nil {
			t.Fatalf("GetAuthState failed: %v", err)
		}

		if retrieved.State != state.State {
			t.Errorf("State mismatch: got %v, want %v", retrieved.State, state.State)
		}
		if retrieved.UserID != state.UserID {
			t.Errorf("UserID mismatch: got %v, want %v", retrieved.UserID, state.UserID)
		}
		if retrieved.Scope != state.Scope {
			t.Errorf("Scope mismatch: got %v, want %v", retrieved.Scope, state.Scope)
		}
		if retrieved.ReturnTo != state.ReturnTo {
			t.Errorf("ReturnTo mismatch: got %v, want %v", retrieved.ReturnTo, state.ReturnTo)
		}
		if diff := retrieved.ExpiresAt.Sub(state.ExpiresAt); diff > time.Second || diff < -time.Second {
			t.Errorf("ExpiresAt mismatch: got %v, want %v, diff %v", retrieved.ExpiresAt, state.ExpiresAt, diff)
		}
	})

	t.Run("GetAuthState not found", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.GetAuthState(ctx, uuid.New().String())
		if err == nil {
			t.Fatal("Expected error for non-existent auth state, got nil")
		}
		if !errors.Is(err, interfaces.ErrNotFound) {
			t.Errorf("Expected NotFound error, got: %v", err)
		}
	})

	t.Run("DeleteAuthState makes state single-use", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		state := model.NewAuthState("user-456", calendarScope, "/calendar")
		if err := repo.PutAuthState(ctx, state); err != nil {
			t.Fatalf("PutAuthState failed: %v", err)
		}
		if err := repo.DeleteAuthState(ctx, state.State); err != nil {
			t.Fatalf("DeleteAuthState failed: %v", err)
		}

		_, err := repo.GetAuthState(ctx, state.State)
		if !errors.Is(err, interfaces.ErrNotFound) {
			t.Errorf("Expected NotFound error after deletion, got: %v", err)
		}
	})

	t.Run("DeleteAuthState not found", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		err := repo.DeleteAuthState(ctx, uuid.New().String())
		if err == nil {
			t.Fatal("Expected error for deleting non-existent auth state, got nil")
		}
		if !errors.Is(err, interfaces.ErrNotFound) {
			t.Errorf("Expected NotFound error, got: %v", err)
		}
	})

	t.Run("AuthState validation on Put", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		invalid := &model.AuthState{
			State:     "", // Invalid: empty nonce
			UserID:    "user-789",
			Scope:     calendarScope,
			CreatedAt: time.Now(),
			ExpiresAt: time.Now().Add(10 * time.Minute),
		}

		if err := repo.PutAuthState(ctx, invalid); err == nil {
			t.Fatal("Expected validation error for invalid auth state, got nil")
		}
	})
}
