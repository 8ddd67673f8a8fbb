package middleware

import (
	"errors"
	"strings"

	"github.com/BangaloreConnect/bc/internal/services"
	"github.com/gofiber/fiber/v2"
)

const claimsKey = "claims"

// AuthMiddleware validates the Bearer session token and stores its claims in
// the request locals.
func AuthMiddleware(tokens *services.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Access token required",
			})
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			// expired and malformed tokens get the same answer
			if !errors.Is(err, services.ErrTokenExpired) && !errors.Is(err, services.ErrTokenMalformed) {
				return err
			}
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "Invalid token",
			})
		}

		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) < 7 || !strings.EqualFold(header[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

// ClaimsFromCtx returns the claims stored by AuthMiddleware, or nil.
func ClaimsFromCtx(c *fiber.Ctx) *services.Claims {
	claims, _ := c.Locals(claimsKey).(*services.Claims)
	return claims
}
