package middleware

import (
	"strings"

	"rikky/internal/models"
	"rikky/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// Locals keys set by AuthRequired.
const (
	LocalEmployeeID = "employee_id"
	LocalUsername   = "username"
)

// AuthRequired is a Fiber middleware to check for a valid JWT token whose
// employee still exists and is enabled. That employee becomes the operator
// of the request context.
func AuthRequired(authService *services.AuthService, logger zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(c, "authorization header is required")
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return unauthorized(c, "authorization header format must be 'Bearer <token>'")
		}

		employee, err := authService.Authenticate(c.UserContext(), parts[1])
		if err != nil {
			if !services.IsKind(err, services.KindUnauthorized) {
				logger.Error().Err(err).Str("path", c.Path()).Msg("authentication lookup failed")
				return c.Status(fiber.StatusInternalServerError).JSON(models.Failure("internal server error"))
			}
			logger.Debug().Err(err).Str("path", c.Path()).Msg("JWT validation failed")
			return unauthorized(c, "invalid or expired token")
		}

		c.Locals(LocalEmployeeID, employee.ID)
		c.Locals(LocalUsername, employee.Username)
		c.SetUserContext(models.WithOperator(c.UserContext(), employee.ID))

		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(models.Failure(message))
}
