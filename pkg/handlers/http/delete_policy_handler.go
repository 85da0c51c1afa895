package http

import (
	"github.com/NeuralTrust/TrustChat/pkg/app/policy"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type deletePolicyHandler struct {
	logger  *logrus.Logger
	manager policy.Manager
}

func NewDeletePolicyHandler(logger *logrus.Logger, manager policy.Manager) Handler {
	return &deletePolicyHandler{
		logger:  logger,
		manager: manager,
	}
}

// Handle @Summary Delete a policy
// @Tags Policies
// @Param policy_id path string true "Policy ID"
// @Success 204 "Policy deleted"
// @Failure 404 {object} map[string]interface{} "Policy not found"
// @Router /api/policies/{policy_id} [delete]
func (h *deletePolicyHandler) Handle(c *fiber.Ctx) error {
	policyID := c.Params("policy_id")
	if err := h.manager.Delete(c.UserContext(), policyID); err != nil {
		return handleError(c, h.logger, err, "failed to delete policy")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
