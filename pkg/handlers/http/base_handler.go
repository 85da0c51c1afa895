package http

import (
	"errors"

	"github.com/NeuralTrust/TrustChat/pkg/common"
	"github.com/NeuralTrust/TrustChat/pkg/domain"
	"github.com/NeuralTrust/TrustChat/pkg/infra/auth/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// resolveUserID prefers the id sent in the body, then the authenticated
// caller, then the default user.
func resolveUserID(c *fiber.Ctx, fromBody string) string {
	if fromBody != "" {
		return fromBody
	}
	if identity, ok := c.Locals(string(common.IdentityContextKey)).(*jwt.Identity); ok && identity != nil && identity.UID != "" {
		return identity.UID
	}
	return common.DefaultUserID
}

// handleError maps domain errors onto statuses: validation is 400, not found
// is 404 and everything else is logged and returned as 500.
func handleError(c *fiber.Ctx, logger *logrus.Logger, err error, message string) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case domain.IsNotFoundError(err):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	default:
		logger.WithError(err).Error(message)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": message})
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}
