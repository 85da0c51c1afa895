package http

import (
	"github.com/NeuralTrust/TrustChat/pkg/app/policy"
	"github.com/NeuralTrust/TrustChat/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type upsertPolicyHandler struct {
	logger  *logrus.Logger
	manager policy.Manager
}

func NewUpsertPolicyHandler(logger *logrus.Logger, manager policy.Manager) Handler {
	return &upsertPolicyHandler{
		logger:  logger,
		manager: manager,
	}
}

// Handle @Summary Create or update a policy
// @Tags Policies
// @Accept json
// @Produce json
// @Param policy_id path string true "Policy ID"
// @Param request body request.UpsertPolicyRequest true "Policy definition"
// @Success 200 {object} policy.Policy "Stored policy"
// @Failure 400 {object} map[string]interface{} "Invalid policy"
// @Router /api/policies/{policy_id} [put]
func (h *upsertPolicyHandler) Handle(c *fiber.Ctx) error {
	policyID := c.Params("policy_id")
	if policyID == "" {
		return badRequest(c, "policy_id is required")
	}
	var req request.UpsertPolicyRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	p := req.ToPolicy(policyID)
	if err := h.manager.Upsert(c.UserContext(), p); err != nil {
		return handleError(c, h.logger, err, "failed to save policy")
	}
	h.logger.WithField("policy_id", policyID).Info("policy saved")
	return c.Status(fiber.StatusOK).JSON(p)
}
