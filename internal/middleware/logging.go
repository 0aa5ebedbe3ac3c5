package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// Logging logs HTTP requests with timing information.
func Logging(logger zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()
		if err != nil {
			// let the app's error handler write the response so the status is known
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		event := logger.Info()
		if status >= fiber.StatusInternalServerError {
			event = logger.Error()
		}
		event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("remote_addr", c.IP()).
			Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Msg("http request")
		return nil
	}
}

// Recovery logs a recovered panic. It is used as the stack trace handler of
// fiber's recover middleware.
func Recovery(logger zerolog.Logger) func(c *fiber.Ctx, e interface{}) {
	return func(c *fiber.Ctx, e interface{}) {
		logger.Error().
			Interface("panic", e).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("panic recovered")
	}
}
