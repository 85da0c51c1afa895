package middleware

import (
	"time"

	"github.com/NeuralTrust/TrustChat/pkg/common"
	"github.com/NeuralTrust/TrustChat/pkg/infra/metrics/metric_events"
	"github.com/NeuralTrust/TrustChat/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type requestLogMiddleware struct {
	logger *logrus.Logger
}

func NewRequestLogMiddleware(logger *logrus.Logger) Middleware {
	return &requestLogMiddleware{logger: logger}
}

func (m *requestLogMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		c.Locals(common.LatencyContextKey, start)

		client := &metric_events.Client{IP: c.IP()}
		if ua := utils.ParseUserAgent(c.Get(fiber.HeaderUserAgent), c.Get(fiber.HeaderAcceptLanguage)); ua != nil {
			client.Device = ua.Device
			client.Os = ua.OS
			client.Browser = ua.Browser
			client.Locale = ua.Locale
		}
		c.SetUserContext(metric_events.WithClient(c.UserContext(), client))

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		fields := logrus.Fields{
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"request_id": c.GetRespHeader(fiber.HeaderXRequestID),
			"ip":         client.IP,
		}
		if client.Device != "" {
			fields["device"] = client.Device
			fields["os"] = client.Os
		}
		entry := m.logger.WithFields(fields)
		switch {
		case status >= fiber.StatusInternalServerError:
			entry.Error("request failed")
		case status >= fiber.StatusBadRequest:
			entry.Warn("request rejected")
		default:
			entry.Info("request completed")
		}
		return err
	}
}
