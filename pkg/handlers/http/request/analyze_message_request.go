package request

import (
	"strings"

	"github.com/NeuralTrust/TrustChat/pkg/domain"
)

type AnalyzeMessageRequest struct {
	Message   string `json:"message"`
	UserID    string `json:"user_id"`
	RoomID    string `json:"room_id,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

func (r *AnalyzeMessageRequest) Validate() error {
	if strings.TrimSpace(r.Message) == "" {
		return domain.NewValidationError("message is required")
	}
	return nil
}
