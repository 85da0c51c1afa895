package http

import (
	"github.com/NeuralTrust/TrustChat/pkg/app/policy"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type listPoliciesHandler struct {
	logger  *logrus.Logger
	manager policy.Manager
}

func NewListPoliciesHandler(logger *logrus.Logger, manager policy.Manager) Handler {
	return &listPoliciesHandler{
		logger:  logger,
		manager: manager,
	}
}

// Handle @Summary List policies
// @Tags Policies
// @Produce json
// @Success 200 {object} map[string]interface{} "Policies"
// @Router /api/policies [get]
func (h *listPoliciesHandler) Handle(c *fiber.Ctx) error {
	policies, err := h.manager.List(c.UserContext())
	if err != nil {
		return handleError(c, h.logger, err, "failed to list policies")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"policies": policies,
		"count":    len(policies),
	})
}
