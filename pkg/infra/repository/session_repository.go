package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/NeuralTrust/TrustChat/pkg/domain/session"
	"github.com/NeuralTrust/TrustChat/pkg/infra/cache"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const SessionKeyPattern = "session:%s"

type SessionRepository struct {
	cache    cache.Client
	ttl      time.Duration
	maxTurns int
	sf       singleflight.Group
	now      func() time.Time
	newID    func() string
}

// NewSessionRepository stores sessions in redis under session:<user_id>.
// Every write refreshes the key's expiry to ttl.
func NewSessionRepository(c cache.Client, ttl time.Duration, maxTurns int) session.Repository {
	return &SessionRepository{
		cache:    c,
		ttl:      ttl,
		maxTurns: maxTurns,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
}

func (r *SessionRepository) GetOrCreate(ctx context.Context, userID string) (*session.Session, error) {
	v, err, _ := r.sf.Do(userID, func() (interface{}, error) {
		s, err := r.load(ctx, userID)
		if err == nil {
			return s, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			return nil, err
		}
		s = r.newSession(userID)
		if err := r.save(ctx, s); err != nil {
			return nil, err
		}
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	s, ok := v.(*session.Session)
	if !ok {
		return nil, fmt.Errorf("unexpected session type %T", v)
	}
	return s.Clone(), nil
}

func (r *SessionRepository) AppendTurn(ctx context.Context, userID string, turn session.Turn) error {
	s, err := r.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	s.AppendTurn(turn, r.maxTurns)
	s.ExpiresAt = r.now().Add(r.ttl)
	return r.save(ctx, s)
}

func (r *SessionRepository) SetProviderHandle(ctx context.Context, userID string, handle string) error {
	s, err := r.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	s.ProviderHandle = handle
	return r.save(ctx, s)
}

func (r *SessionRepository) Delete(ctx context.Context, userID string) error {
	return r.cache.Delete(ctx, fmt.Sprintf(SessionKeyPattern, userID))
}

func (r *SessionRepository) newSession(userID string) *session.Session {
	now := r.now()
	return &session.Session{
		ID:        r.newID(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(r.ttl),
		Turns:     []session.Turn{},
	}
}

func (r *SessionRepository) load(ctx context.Context, userID string) (*session.Session, error) {
	raw, err := r.cache.Get(ctx, fmt.Sprintf(SessionKeyPattern, userID))
	if err != nil {
		return nil, err
	}
	var s session.Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	if s.Expired(r.now()) {
		return nil, cache.ErrCacheMiss
	}
	return &s, nil
}

func (r *SessionRepository) save(ctx context.Context, s *session.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	ttl := s.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		ttl = r.ttl
	}
	if err := r.cache.Set(ctx, fmt.Sprintf(SessionKeyPattern, s.UserID), string(data), ttl); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
