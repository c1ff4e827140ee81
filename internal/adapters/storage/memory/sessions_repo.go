package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"medical-data-entry/internal/domain/sessions"
)

// DefaultSessionTTL aplica si no se pasa WithSessionTTL.
const DefaultSessionTTL = 30 * time.Minute

type sessionEntry struct {
	session  *sessions.Session
	lastUsed time.Time
}

// sessionRepo guarda sesiones en memoria. Una sesión sin uso por más de
// ttl se descarta: en el barrido de cada Create o al buscarla.
type sessionRepo struct {
	mu   sync.Mutex
	byID map[string]*sessionEntry

	ttl time.Duration
	now func() time.Time
}

type SessionRepoOption func(*sessionRepo)

func WithSessionTTL(d time.Duration) SessionRepoOption {
	return func(r *sessionRepo) {
		if d > 0 {
			r.ttl = d
		}
	}
}

func WithSessionClock(now func() time.Time) SessionRepoOption {
	return func(r *sessionRepo) {
		if now != nil {
			r.now = now
		}
	}
}

func NewSessionRepo(opts ...SessionRepoOption) sessions.Repository {
	r := &sessionRepo{
		byID: make(map[string]*sessionEntry),
		ttl:  DefaultSessionTTL,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *sessionRepo) Create(ctx context.Context, s *sessions.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s == nil || strings.TrimSpace(s.ID) == "" {
		return errors.New("session id required")
	}

	now := r.now()
	r.sweepLocked(now)

	if _, exists := r.byID[s.ID]; exists {
		return errors.New("session already exists")
	}
	r.byID[s.ID] = &sessionEntry{session: s, lastUsed: now}
	return nil
}

// GetByID renueva lastUsed. Una sesión vencida se borra y da ErrNotFound.
func (r *sessionRepo) GetByID(ctx context.Context, id string) (*sessions.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byID[id]
	if !ok {
		return nil, sessions.ErrNotFound
	}
	now := r.now()
	if r.expired(e, now) {
		delete(r.byID, id)
		return nil, sessions.ErrNotFound
	}
	e.lastUsed = now
	return e.session, nil
}

func (r *sessionRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return sessions.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *sessionRepo) expired(e *sessionEntry, now time.Time) bool {
	return now.Sub(e.lastUsed) > r.ttl
}

// sweepLocked asume mu tomado.
func (r *sessionRepo) sweepLocked(now time.Time) {
	for id, e := range r.byID {
		if r.expired(e, now) {
			delete(r.byID, id)
		}
	}
}
