package http

import (
	"github.com/NeuralTrust/TrustChat/pkg/app/report"
	"github.com/NeuralTrust/TrustChat/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type analyzeChatHandler struct {
	logger  *logrus.Logger
	reports report.Service
}

func NewAnalyzeChatHandler(logger *logrus.Logger, reports report.Service) Handler {
	return &analyzeChatHandler{
		logger:  logger,
		reports: reports,
	}
}

// Handle @Summary Analyze a whole conversation
// @Description Analyzes each message and rolls the verdicts up into a chat report
// @Tags Analysis
// @Accept json
// @Produce json
// @Param request body request.AnalyzeChatRequest true "Conversation to analyze"
// @Success 200 {object} analysis.ChatReport "Chat report"
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Router /api/analyze-chat [post]
func (h *analyzeChatHandler) Handle(c *fiber.Ctx) error {
	var req request.AnalyzeChatRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return handleError(c, h.logger, err, "invalid request")
	}

	h.logger.WithFields(logrus.Fields{
		"room_id":  req.RoomID,
		"messages": len(req.Messages),
	}).Debug("generating chat report")

	rep := h.reports.Generate(c.UserContext(), report.Request{
		Messages: req.Messages,
		RoomID:   req.RoomID,
	})
	return c.Status(fiber.StatusOK).JSON(rep)
}
