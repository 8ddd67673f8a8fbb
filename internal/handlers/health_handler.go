package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":      "OK",
		"message":     "Server is running",
		"environment": h.env,
		"timestamp":   h.now().UTC().Format(time.RFC3339),
	})
}
