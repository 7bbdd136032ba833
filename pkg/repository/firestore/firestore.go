package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"

	"github.com/roomlab/roomboard/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested document does not exist
var ErrNotFound = interfaces.ErrNotFound

const (
	sessionsCollection    = "sessions"
	credentialsCollection = "credentials"
	authStatesCollection  = "auth_states"
)

type Firestore struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client", goerr.V("projectID", projectID))
	}

	f := &Firestore{
		client: client,
	}
	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) collection(name string) *firestore.CollectionRef {
	return f.client.Collection(f.collectionPrefix + name)
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
