package http

import (
	"time"

	"github.com/NeuralTrust/TrustChat/pkg/app/analysis"
	"github.com/gofiber/fiber/v2"
)

type healthHandler struct {
	analyzer analysis.Analyzer
}

func NewHealthHandler(analyzer analysis.Analyzer) Handler {
	return &healthHandler{analyzer: analyzer}
}

// Handle @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is healthy"
// @Router /health [get]
func (h *healthHandler) Handle(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":    "healthy",
		"service":   "TrustChat API",
		"sources":   h.analyzer.SourceNames(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
