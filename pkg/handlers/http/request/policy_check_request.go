package request

import (
	"strings"

	"github.com/NeuralTrust/TrustChat/pkg/domain"
)

type PolicyCheckRequest struct {
	Message  string   `json:"message"`
	UserID   string   `json:"user_id"`
	Policies []string `json:"policies,omitempty"`
}

func (r *PolicyCheckRequest) Validate() error {
	if strings.TrimSpace(r.Message) == "" {
		return domain.NewValidationError("message is required")
	}
	return nil
}
