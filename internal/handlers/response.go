package handlers

import (
	"errors"

	"github.com/BangaloreConnect/bc/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

// serviceError maps a service failure onto a response. Anything that is not
// a validation or lookup failure is logged and reported as a bare 500.
func (h *Handler) serviceError(c *fiber.Ctx, op string, err error) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		body := fiber.Map{"success": false, "message": verr.Error()}
		if len(verr.Fields) > 0 {
			body["fields"] = verr.Fields
		}
		return c.Status(fiber.StatusBadRequest).JSON(body)
	case errors.Is(err, services.ErrJobNotFound):
		return fail(c, fiber.StatusNotFound, "Job not found")
	}

	h.l.Error(op, zap.String("path", c.Path()), zap.Error(err))
	return fail(c, fiber.StatusInternalServerError, "Server error")
}

// ErrorHandler answers errors that escaped the handlers without leaking their text.
func ErrorHandler(l *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
			return fail(c, fe.Code, fe.Message)
		}
		l.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Internal server error")
	}
}
