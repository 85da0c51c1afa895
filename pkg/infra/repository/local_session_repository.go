package repository

import (
	"context"
	"sync"
	"time"

	"github.com/NeuralTrust/TrustChat/pkg/domain/session"
	"github.com/NeuralTrust/TrustChat/pkg/infra/cache"
)

type LocalSessionRepository struct {
	sessions *cache.TTLMap
	maxTurns int
	mu       sync.Mutex
}

// NewLocalSessionRepository keeps sessions in an in-process TTL map.
func NewLocalSessionRepository(sessions *cache.TTLMap, maxTurns int) session.Repository {
	return &LocalSessionRepository{
		sessions: sessions,
		maxTurns: maxTurns,
	}
}

func (r *LocalSessionRepository) GetOrCreate(_ context.Context, userID string) (*session.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getOrCreate(userID).Clone(), nil
}

func (r *LocalSessionRepository) AppendTurn(_ context.Context, userID string, turn session.Turn) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.getOrCreate(userID).Clone()
	s.AppendTurn(turn, r.maxTurns)
	r.store(s)
	return nil
}

func (r *LocalSessionRepository) SetProviderHandle(_ context.Context, userID string, handle string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.getOrCreate(userID).Clone()
	s.ProviderHandle = handle
	r.store(s)
	return nil
}

func (r *LocalSessionRepository) Delete(_ context.Context, userID string) error {
	r.sessions.Delete(userID)
	return nil
}

// getOrCreate must be called with mu held.
func (r *LocalSessionRepository) getOrCreate(userID string) *session.Session {
	if v, ok := r.sessions.Get(userID); ok {
		if s, ok := v.(*session.Session); ok {
			return s
		}
	}
	s := session.NewSession(userID, r.sessions.TTL())
	r.sessions.Set(userID, s)
	return s
}

// store refreshes the session expiry along with the map entry.
func (r *LocalSessionRepository) store(s *session.Session) {
	s.ExpiresAt = time.Now().UTC().Add(r.sessions.TTL())
	r.sessions.Set(s.UserID, s)
}
