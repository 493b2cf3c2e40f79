package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"ai-writing-assistant-be/pkg/store"
)

// SessionRepository keeps live writing sessions in process memory. A session
// idle for longer than the TTL is evicted together with its transcript and
// history.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Create a cache with a default expiration time of 1 hour, and which
	// purges expired items every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

// Save stores the session and refreshes its idle TTL.
func (r *SessionRepository) Save(session *store.Session) {
	r.cache.Set(session.ID.String(), session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionId uuid.UUID) (*store.Session, bool) {
	if x, found := r.cache.Get(sessionId.String()); found {
		return x.(*store.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionId uuid.UUID) {
	r.cache.Delete(sessionId.String())
}
