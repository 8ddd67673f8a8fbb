package middleware

import (
	"github.com/BangaloreConnect/bc/internal/services"
	"github.com/gofiber/fiber/v2"
)

// AdminMiddleware must run after AuthMiddleware.
func AdminMiddleware(c *fiber.Ctx) error {
	if err := services.RequireAdmin(ClaimsFromCtx(c)); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "Admin access required",
		})
	}
	return c.Next()
}
