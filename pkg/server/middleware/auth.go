package middleware

import (
	"errors"
	"strings"

	"github.com/NeuralTrust/TrustChat/pkg/common"
	"github.com/NeuralTrust/TrustChat/pkg/config"
	"github.com/NeuralTrust/TrustChat/pkg/infra/auth/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const DemoUserID = "demo_user"

type authMiddleware struct {
	cfg     config.AuthConfig
	manager jwt.Manager
	logger  *logrus.Logger
}

func NewAuthMiddleware(logger *logrus.Logger, cfg config.AuthConfig, manager jwt.Manager) Middleware {
	return &authMiddleware{
		cfg:     cfg,
		manager: manager,
		logger:  logger,
	}
}

// Middleware verifies the bearer token and stores the caller's identity in
// locals. With auth disabled every request runs as the demo user.
func (m *authMiddleware) Middleware() fiber.Handler {
	demo := &jwt.Identity{UID: m.cfg.DemoUser, EmailVerified: true}
	if demo.UID == "" {
		demo.UID = DemoUserID
	}

	return func(c *fiber.Ctx) error {
		if !m.cfg.Enabled {
			c.Locals(string(common.IdentityContextKey), demo)
			return c.Next()
		}

		token := bearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing bearer token"})
		}
		identity, err := m.manager.VerifyToken(token)
		if err != nil {
			m.logger.WithError(err).WithField("path", c.Path()).Debug("rejected token")
			message := "invalid token"
			if errors.Is(err, jwt.ErrExpiredToken) {
				message = "token expired"
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": message})
		}
		c.Locals(string(common.IdentityContextKey), identity)
		return c.Next()
	}
}

// bearerToken reads the Authorization header, falling back to the token
// query parameter that browser websocket clients have to use.
func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return c.Query("token")
}
