package session

import (
	"time"

	"github.com/NeuralTrust/TrustChat/pkg/domain/analysis"
	"github.com/google/uuid"
)

const DefaultMaxTurns = 10

type Turn struct {
	Message   string             `json:"message"`
	RiskLevel analysis.RiskLevel `json:"risk_level"`
	At        time.Time          `json:"at"`
}

// Session is the per-user analysis context. ProviderHandle is an opaque
// conversation handle owned by the upstream model provider.
type Session struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`
	ExpiresAt      time.Time `json:"expires_at"`
	Turns          []Turn    `json:"turns"`
	ProviderHandle string    `json:"provider_handle,omitempty"`
}

func NewSession(userID string, ttl time.Duration) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
		Turns:     []Turn{},
	}
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// AppendTurn keeps at most maxTurns of the most recent turns.
func (s *Session) AppendTurn(turn Turn, maxTurns int) {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	s.Turns = append(s.Turns, turn)
	if over := len(s.Turns) - maxTurns; over > 0 {
		s.Turns = append([]Turn(nil), s.Turns[over:]...)
	}
}

// RecentMessages returns up to n of the latest messages, oldest first.
func (s *Session) RecentMessages(n int) []string {
	if n <= 0 || len(s.Turns) == 0 {
		return nil
	}
	start := len(s.Turns) - n
	if start < 0 {
		start = 0
	}
	out := make([]string, 0, len(s.Turns)-start)
	for _, t := range s.Turns[start:] {
		out = append(out, t.Message)
	}
	return out
}

func (s *Session) Clone() *Session {
	c := *s
	c.Turns = append([]Turn(nil), s.Turns...)
	return &c
}
