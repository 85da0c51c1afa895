package request

import (
	"strings"

	"github.com/NeuralTrust/TrustChat/pkg/domain"
	"github.com/NeuralTrust/TrustChat/pkg/domain/analysis"
)

type AnalyzeChatRequest struct {
	Messages []analysis.ChatMessage `json:"messages"`
	RoomID   string                 `json:"room_id,omitempty"`
}

func (r *AnalyzeChatRequest) Validate() error {
	if len(r.Messages) == 0 {
		return domain.NewValidationError("messages must not be empty")
	}
	for i, m := range r.Messages {
		if strings.TrimSpace(m.Content) == "" {
			return domain.NewValidationError("messages[%d].content is required", i)
		}
		if m.User == "" {
			r.Messages[i].User = "unknown"
		}
	}
	return nil
}
