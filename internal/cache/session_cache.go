package cache

import (
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/shiptrain/portal/internal/models"
	"github.com/shiptrain/portal/pkg/logger"
)

const (
	sessionKeyPrefix     = "session:"
	sessionCleanupPeriod = 10 * time.Minute
)

// SessionCache holds the training surface's server-side sessions. Entries expire
// after the configured TTL and are swept periodically.
type SessionCache struct {
	cache *gocache.Cache
	ttl   time.Duration
	now   func() time.Time
}

// NewSessionCache creates a session cache whose entries live for ttl
func NewSessionCache(ttl time.Duration) *SessionCache {
	return &SessionCache{
		cache: gocache.New(ttl, sessionCleanupPeriod),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Create stores a copy of s under a fresh id and returns the stored session
func (sc *SessionCache) Create(s models.Session) models.Session {
	now := sc.now()
	s.ID = uuid.NewString()
	s.IssuedAt = now.Unix()
	s.ExpiresAt = now.Add(sc.ttl).Unix()

	sc.cache.Set(sessionKeyPrefix+s.ID, s, sc.ttl)
	logger.Debug("Session created",
		zap.String("session_id", s.ID),
		zap.Int64("person_id", s.PersonID))
	return s
}

// Get returns the live session stored under id
func (sc *SessionCache) Get(id string) (models.Session, bool) {
	if id == "" {
		return models.Session{}, false
	}
	v, ok := sc.cache.Get(sessionKeyPrefix + id)
	if !ok {
		return models.Session{}, false
	}
	s, ok := v.(models.Session)
	if !ok || sc.now().Unix() >= s.ExpiresAt {
		return models.Session{}, false
	}
	return s, true
}

// Delete removes a session. Unknown ids are ignored.
func (sc *SessionCache) Delete(id string) {
	sc.cache.Delete(sessionKeyPrefix + id)
}

// Len returns the number of stored sessions, including ones not yet swept
func (sc *SessionCache) Len() int {
	return sc.cache.ItemCount()
}
