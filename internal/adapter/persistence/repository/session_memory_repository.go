package repository

import (
	"context"
	"sync"
	"time"

	"monitoring_tunggakan/internal/usecase/interfaces"
)

type memorySession struct {
	token     string
	expiresAt time.Time
}

// SessionMemoryRepository keeps sessions in process memory. Used for
// development and tests; everything is lost on restart.
type SessionMemoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]memorySession
	ttl      time.Duration
	now      func() time.Time
}

var _ interfaces.ISessionStore = (*SessionMemoryRepository)(nil)

func NewSessionMemoryRepository(ttl time.Duration) *SessionMemoryRepository {
	return &SessionMemoryRepository{
		sessions: make(map[string]memorySession),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (r *SessionMemoryRepository) Get(_ context.Context, key string) (string, error) {
	r.mu.RLock()
	s, ok := r.sessions[key]
	r.mu.RUnlock()
	if !ok {
		return "", nil
	}
	if r.expired(s) {
		r.mu.Lock()
		// A Set may have replaced the entry since the read lock was released.
		if cur, ok := r.sessions[key]; ok && r.expired(cur) {
			delete(r.sessions, key)
		}
		r.mu.Unlock()
		return "", nil
	}
	return s.token, nil
}

func (r *SessionMemoryRepository) expired(s memorySession) bool {
	return !s.expiresAt.IsZero() && !r.now().Before(s.expiresAt)
}

func (r *SessionMemoryRepository) Set(_ context.Context, key, token string) error {
	s := memorySession{token: token}
	if r.ttl > 0 {
		s.expiresAt = r.now().Add(r.ttl)
	}
	r.mu.Lock()
	r.sessions[key] = s
	r.mu.Unlock()
	return nil
}

func (r *SessionMemoryRepository) Clear(_ context.Context, key string) error {
	r.mu.Lock()
	delete(r.sessions, key)
	r.mu.Unlock()
	return nil
}
