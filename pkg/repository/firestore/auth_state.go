package firestore

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/roomlab/roomboard/pkg/domain/model"
)

func (f *Firestore) PutAuthState(ctx context.Context, state *model.AuthState) error {
	if err := state.Validate(); err != nil {
		return goerr.Wrap(err, "invalid auth state")
	}

	docRef := f.collection(authStatesCollection).Doc(state.State)
	if _, err := docRef.Set(ctx, state); err != nil {
		return goerr.Wrap(err, "failed to put auth state to firestore")
	}

	return nil
}

func (f *Firestore) GetAuthState(ctx context.Context, state string) (*model.AuthState, error) {
	if state == "" {
		return nil, goerr.New("auth state nonce cannot be empty")
	}

	docRef := f.collection(authStatesCollection).Doc(state)
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "auth state not found")
		}
		return nil, goerr.Wrap(err, "failed to get auth state from firestore")
	}

	var record model.AuthState
	if err := doc.DataTo(&record); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal auth state")
	}

	return &record, nil
}

func (f *Firestore) DeleteAuthState(ctx context.Context, state string) error {
	if state == "" {
		return goerr.New("auth state nonce cannot be empty")
	}

	docRef := f.collection(authStatesCollection).Doc(state)

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "auth state not found")
		}
		return goerr.Wrap(err, "failed to get auth state from firestore")
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete auth state from firestore")
	}

	return nil
}
