package middleware

import (
	"github.com/NeuralTrust/TrustChat/pkg/common"
	"github.com/NeuralTrust/TrustChat/pkg/infra/prometheus"
	infra "github.com/NeuralTrust/TrustChat/pkg/infra/websocket"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type websocketMiddleware struct {
	logger    *logrus.Logger
	semaphore *infra.Semaphore
}

func NewWebsocketMiddleware(logger *logrus.Logger, semaphore *infra.Semaphore) Middleware {
	return &websocketMiddleware{
		logger:    logger,
		semaphore: semaphore,
	}
}

// Middleware admits websocket upgrades while a connection slot is free. The
// handler releases the slot when the socket closes.
func (m *websocketMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		if !m.semaphore.Acquire() {
			m.logger.WithField("max_connections", m.semaphore.Capacity()).
				Warn("maximum websocket connections reached, rejecting connection")
			return fiber.ErrTooManyRequests
		}
		if prometheus.Config.EnableConnections {
			prometheus.Connections.WithLabelValues(c.Path(), "active").Set(float64(m.semaphore.InUse()))
		}
		c.Locals(string(common.SemaphoreKey), m.semaphore)
		return c.Next()
	}
}
