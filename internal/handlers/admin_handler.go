package handlers

import "github.com/gofiber/fiber/v2"

// AdminListJobs returns every job regardless of status.
func (h *Handler) AdminListJobs(c *fiber.Ctx) error {
	jobs, err := h.jobs.ListAll(c.UserContext())
	if err != nil {
		return h.serviceError(c, "list all jobs", err)
	}
	return c.JSON(fiber.Map{"success": true, "jobs": jobs})
}

func (h *Handler) AdminStats(c *fiber.Ctx) error {
	stats, err := h.jobs.Stats(c.UserContext())
	if err != nil {
		return h.serviceError(c, "job stats", err)
	}
	return c.JSON(fiber.Map{"success": true, "stats": stats})
}
