package variants

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/mstore-labs/pim-backend/pkg/errors"
	"github.com/mstore-labs/pim-backend/pkg/logger"
)

// DefaultSessionTTL is how long an idle editing session survives before
// the sweeper drops it.
const DefaultSessionTTL = 30 * time.Minute

// Session is one editing session over a product's variants. All access
// to the change set goes through With, which serializes callers.
type Session struct {
	ID        uuid.UUID
	ProductID uuid.UUID

	mu       sync.Mutex
	changes  *ChangeSet
	lastUsed time.Time
	now      func() time.Time
}

// With runs fn with exclusive access to the session's change set and
// refreshes the idle timer.
func (s *Session) With(fn func(cs *ChangeSet) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = s.now()
	return fn(s.changes)
}

// Registry tracks open editing sessions and expires idle ones.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
	logg     *logger.Logger
	now      func() time.Time
}

// NewRegistry builds a session registry. A non-positive ttl falls back
// to DefaultSessionTTL.
func NewRegistry(ttl time.Duration, logg *logger.Logger) *Registry {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Registry{
		sessions: map[uuid.UUID]*Session{},
		ttl:      ttl,
		logg:     logg,
		now:      time.Now,
	}
}

// Open starts a fresh session for the product. The persisted ids become
// the snapshot staged refs are validated against.
func (r *Registry) Open(productID uuid.UUID, persisted []uuid.UUID) *Session {
	session := &Session{
		ID:        uuid.New(),
		ProductID: productID,
		changes:   NewChangeSet(productID, persisted),
		lastUsed:  r.now(),
		now:       r.now,
	}
	r.mu.Lock()
	r.sessions[session.ID] = session
	r.mu.Unlock()
	return session
}

// Get returns the session or NOT_FOUND when it never existed or expired.
func (r *Registry) Get(id uuid.UUID) (*Session, error) {
	r.mu.RLock()
	session, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "editing session not found or expired")
	}
	return session, nil
}

// Close drops the session and its staged changes.
func (r *Registry) Close(id uuid.UUID) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Sweep drops sessions idle longer than the TTL and returns how many.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.ttl)
	r.mu.Lock()
	defer r.mu.Unlock()

	dropped := 0
	for id, session := range r.sessions {
		session.mu.Lock()
		idle := session.lastUsed.Before(cutoff)
		session.mu.Unlock()
		if idle {
			delete(r.sessions, id)
			dropped++
		}
	}
	return dropped
}

// Run sweeps expired sessions on the interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if dropped := r.Sweep(); dropped > 0 && r.logg != nil {
				lctx := r.logg.WithField(ctx, "dropped", dropped)
				r.logg.Info(lctx, "expired idle editing sessions")
			}
		}
	}
}

// Len returns how many sessions are open.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
