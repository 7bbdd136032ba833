package firestore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/roomlab/roomboard/pkg/domain/model"
	"github.com/roomlab/roomboard/pkg/domain/types"
)

// credentialDocID builds a document id from the (user id, scope) composite
// key. Scope URLs contain characters Firestore forbids in document ids, so
// the pair is hashed.
func credentialDocID(userID types.UserID, scope types.Scope) string {
	sum := sha256.Sum256([]byte(userID.String() + "/" + scope.String()))
	return hex.EncodeToString(sum[:])
}

func (f *Firestore) PutCredential(ctx context.Context, cred *model.Credential) error {
	if err := cred.Validate(); err != nil {
		return goerr.Wrap(err, "invalid credential")
	}

	docRef := f.collection(credentialsCollection).Doc(credentialDocID(cred.UserID, cred.Scope))
	if _, err := docRef.Set(ctx, cred); err != nil {
		return goerr.Wrap(err, "failed to put credential to firestore", goerr.V("userID", cred.UserID))
	}

	return nil
}

func (f *Firestore) GetCredential(ctx context.Context, userID types.UserID, scope types.Scope) (*model.Credential, error) {
	if err := userID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid user ID")
	}
	if err := scope.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid scope")
	}

	docRef := f.collection(credentialsCollection).Doc(credentialDocID(userID, scope))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "credential not found", goerr.V("userID", userID), goerr.V("scope", scope))
		}
		return nil, goerr.Wrap(err, "failed to get credential from firestore", goerr.V("userID", userID))
	}

	var cred model.Credential
	if err := doc.DataTo(&cred); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal credential")
	}

	return &cred, nil
}

func (f *Firestore) DeleteCredential(ctx context.Context, userID types.UserID, scope types.Scope) error {
	if err := userID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid user ID")
	}
	if err := scope.Validate(); err != nil {
		return goerr.Wrap(err, "invalid scope")
	}

	docRef := f.collection(credentialsCollection).Doc(credentialDocID(userID, scope))

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "credential not found", goerr.V("userID", userID), goerr.V("scope", scope))
		}
		return goerr.Wrap(err, "failed to get credential from firestore", goerr.V("userID", userID))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete credential from firestore", goerr.V("userID", userID))
	}

	return nil
}
