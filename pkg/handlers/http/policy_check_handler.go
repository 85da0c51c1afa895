package http

import (
	"time"

	"github.com/NeuralTrust/TrustChat/pkg/app/analysis"
	"github.com/NeuralTrust/TrustChat/pkg/app/policy"
	"github.com/NeuralTrust/TrustChat/pkg/handlers/http/request"
	"github.com/NeuralTrust/TrustChat/pkg/infra/metrics/metric_events"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type policyCheckHandler struct {
	logger  *logrus.Logger
	checker policy.Checker
	auditor analysis.Auditor
}

func NewPolicyCheckHandler(logger *logrus.Logger, checker policy.Checker, auditor analysis.Auditor) Handler {
	return &policyCheckHandler{
		logger:  logger,
		checker: checker,
		auditor: auditor,
	}
}

// Handle @Summary Check a message against company policies
// @Description Evaluates the message against the active policies that apply to the user
// @Tags Policies
// @Accept json
// @Produce json
// @Param request body request.PolicyCheckRequest true "Message to check"
// @Success 200 {object} policy.Result "Compliance result"
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Router /api/policy-check [post]
func (h *policyCheckHandler) Handle(c *fiber.Ctx) error {
	var req request.PolicyCheckRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return handleError(c, h.logger, err, "invalid request")
	}

	start := time.Now()
	userID := resolveUserID(c, req.UserID)
	result := h.checker.Check(c.UserContext(), req.Message, userID, req.Policies)

	if h.auditor != nil {
		evt := metric_events.NewPolicyCheckEvent().Attach(c.UserContext())
		evt.UserID = userID
		evt.RiskLevel = result.RiskLevel().String()
		evt.Error = result.Error
		for _, v := range result.Violations {
			evt.DetectedIssues = append(evt.DetectedIssues, v.ViolationType)
		}
		evt.EndTimestamp = time.Now().Unix()
		evt.Latency = time.Since(start).Milliseconds()
		h.auditor.Process(evt)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}
