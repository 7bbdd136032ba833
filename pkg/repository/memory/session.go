package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/roomlab/roomboard/pkg/domain/model/auth"
	"github.com/roomlab/roomboard/pkg/domain/types"
)

type sessionStore struct {
	mu       sync.RWMutex
	sessions map[types.SessionID]*auth.Session
}

func newSessionStore() *sessionStore {
	return &sessionStore{
		sessions: make(map[types.SessionID]*auth.Session),
	}
}

func copySession(s *auth.Session) *auth.Session {
	copied := *s
	return &copied
}

func (r *Memory) PutSession(ctx context.Context, session *auth.Session) error {
	if err := session.Validate(); err != nil {
		return goerr.Wrap(err, "invalid session")
	}

	r.sessions.mu.Lock()
	defer r.sessions.mu.Unlock()

	r.sessions.sessions[session.ID] = copySession(session)
	return nil
}

func (r *Memory) GetSession(ctx context.Context, sessionID types.SessionID) (*auth.Session, error) {
	if err := sessionID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid session ID")
	}

	r.sessions.mu.RLock()
	defer r.sessions.mu.RUnlock()

	session, ok := r.sessions.sessions[sessionID]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "session not found", goerr.V("sessionID", sessionID))
	}

	return copySession(session), nil
}

func (r *Memory) DeleteSession(ctx context.Context, sessionID types.SessionID) error {
	if err := sessionID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid session ID")
	}

	r.sessions.mu.Lock()
	defer r.sessions.mu.Unlock()

	if _, ok := r.sessions.sessions[sessionID]; !ok {
		return goerr.Wrap(ErrNotFound, "session not found", goerr.V("sessionID", sessionID))
	}

	delete(r.sessions.sessions, sessionID)
	return nil
}
