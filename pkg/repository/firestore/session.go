package firestore

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/roomlab/roomboard/pkg/domain/model/auth"
	"github.com/roomlab/roomboard/pkg/domain/types"
)

func (f *Firestore) PutSession(ctx context.Context, session *auth.Session) error {
	if err := session.Validate(); err != nil {
		return goerr.Wrap(err, "invalid session")
	}

	docRef := f.collection(sessionsCollection).Doc(session.ID.String())
	if _, err := docRef.Set(ctx, session); err != nil {
		return goerr.Wrap(err, "failed to put session to firestore", goerr.V("sessionID", session.ID))
	}

	return nil
}

func (f *Firestore) GetSession(ctx context.Context, sessionID types.SessionID) (*auth.Session, error) {
	if err := sessionID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid session ID")
	}

	docRef := f.collection(sessionsCollection).Doc(sessionID.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "session not found", goerr.V("sessionID", sessionID))
		}
		return nil, goerr.Wrap(err, "failed to get session from firestore", goerr.V("sessionID", sessionID))
	}

	var session auth.Session
	if err := doc.DataTo(&session); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal session")
	}

	return &session, nil
}

func (f *Firestore) DeleteSession(ctx context.Context, sessionID types.SessionID) error {
	if err := sessionID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid session ID")
	}

	docRef := f.collection(sessionsCollection).Doc(sessionID.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "session not found", goerr.V("sessionID", sessionID))
		}
		return goerr.Wrap(err, "failed to get session from firestore", goerr.V("sessionID", sessionID))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete session from firestore", goerr.V("sessionID", sessionID))
	}

	return nil
}
