package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger writes one line per request.
func RequestLogger(l *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// the error handler has not run yet
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("URI", c.OriginalURL()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		}
		if status >= fiber.StatusInternalServerError {
			l.Error("request", append(fields, zap.Error(err))...)
		} else {
			l.Info("request", fields...)
		}
		return err
	}
}
