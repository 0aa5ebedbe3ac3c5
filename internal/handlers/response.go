package handlers

import (
	"errors"

	"rikky/internal/models"
	"rikky/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// writeOK writes a successful envelope.
func writeOK[T any](c *fiber.Ctx, message string, data T) error {
	return c.Status(fiber.StatusOK).JSON(models.Success(message, data))
}

// writeError maps err to a failure envelope. Domain errors keep their
// message; anything else is logged and answered without detail.
func writeError(c *fiber.Ctx, logger zerolog.Logger, err error) error {
	var de *services.DomainError
	if errors.As(err, &de) {
		return c.Status(statusForKind(de.Kind)).JSON(models.Failure(de.Message))
	}
	logger.Error().
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
		Msg("handler error")
	return c.Status(fiber.StatusInternalServerError).JSON(models.Failure("internal server error"))
}

func statusForKind(kind services.ErrorKind) int {
	switch kind {
	case services.KindValidation:
		return fiber.StatusBadRequest
	case services.KindNotFound:
		return fiber.StatusNotFound
	case services.KindConflict:
		return fiber.StatusConflict
	case services.KindUnauthorized:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler answers errors that escape a handler, such as unknown
// routes and recovered panics, with the failure envelope.
func ErrorHandler(logger zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(models.Failure(fe.Message))
		}
		return writeError(c, logger, err)
	}
}

func invalidBody(err error) error {
	return services.NewDomainError(services.KindValidation, "invalid request body: %v", err)
}
