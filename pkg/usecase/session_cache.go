package usecase

import (
	"sync"
	"time"

	"github.com/roomlab/roomboard/pkg/domain/model/auth"
	"github.com/roomlab/roomboard/pkg/domain/types"
)

const sessionCacheTTL = 5 * time.Minute

type cachedSession struct {
	session   *auth.Session
	expiresAt time.Time
}

// sessionCache keeps recently validated sessions in-process so every request
// does not round-trip to the repository.
type sessionCache struct {
	cache sync.Map
}

func newSessionCache() *sessionCache {
	return &sessionCache{}
}

func (c *sessionCache) get(sessionID types.SessionID) (*auth.Session, bool) {
	val, ok := c.cache.Load(sessionID)
	if !ok {
		return nil, false
	}

	cached := val.(*cachedSession)
	if time.Now().After(cached.expiresAt) {
		c.cache.Delete(sessionID)
		return nil, false
	}

	return cached.session, true
}

func (c *sessionCache) set(session *auth.Session) {
	c.cache.Store(session.ID, &cachedSession{
		session:   session,
		expiresAt: time.Now().Add(sessionCacheTTL),
	})
}

func (c *sessionCache) remove(sessionID types.SessionID) {
	c.cache.Delete(sessionID)
}
