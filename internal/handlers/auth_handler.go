package handlers

import (
	"errors"

	"github.com/BangaloreConnect/bc/internal/models"
	"github.com/BangaloreConnect/bc/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminLogin exchanges admin credentials for a session token. Every rejection,
// including a valid non-admin account, gets the same 400.
func (h *Handler) AdminLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return fail(c, fiber.StatusBadRequest, "Invalid credentials")
	}

	user, err := h.identity.VerifyCredentials(c.UserContext(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.l.Info("admin login rejected", zap.String("username", req.Username))
			return fail(c, fiber.StatusBadRequest, "Invalid credentials")
		}
		return h.serviceError(c, "verify credentials", err)
	}
	if user.Role != models.RoleAdmin {
		h.l.Info("admin login rejected", zap.String("username", req.Username), zap.String("role", string(user.Role)))
		return fail(c, fiber.StatusBadRequest, "Invalid credentials")
	}

	token, _, err := h.tokens.Issue(user)
	if err != nil {
		return h.serviceError(c, "issue token", err)
	}

	h.l.Info("admin logged in", zap.String("username", user.Username))
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Admin login successful",
		"token":   token,
		"user": fiber.Map{
			"username": user.Username,
			"role":     user.Role,
		},
	})
}
