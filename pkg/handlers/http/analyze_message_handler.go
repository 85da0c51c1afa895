package http

import (
	"github.com/NeuralTrust/TrustChat/pkg/app/analysis"
	"github.com/NeuralTrust/TrustChat/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type analyzeMessageHandler struct {
	logger   *logrus.Logger
	analyzer analysis.Analyzer
}

func NewAnalyzeMessageHandler(logger *logrus.Logger, analyzer analysis.Analyzer) Handler {
	return &analyzeMessageHandler{
		logger:   logger,
		analyzer: analyzer,
	}
}

// Handle @Summary Analyze a chat message
// @Description Runs every configured analysis source over the message and returns the aggregated verdict
// @Tags Analysis
// @Accept json
// @Produce json
// @Param request body request.AnalyzeMessageRequest true "Message to analyze"
// @Success 200 {object} analysis.Response "Aggregated verdict"
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Router /api/analyze-message [post]
func (h *analyzeMessageHandler) Handle(c *fiber.Ctx) error {
	var req request.AnalyzeMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return handleError(c, h.logger, err, "invalid request")
	}

	resp := h.analyzer.Analyze(c.UserContext(), analysis.Request{
		Message:   req.Message,
		UserID:    resolveUserID(c, req.UserID),
		RoomID:    req.RoomID,
		Timestamp: req.Timestamp,
	})
	return c.Status(fiber.StatusOK).JSON(resp)
}
