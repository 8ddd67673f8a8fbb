package handlers

import (
	"github.com/BangaloreConnect/bc/internal/middleware"
	"github.com/BangaloreConnect/bc/internal/models"
	"github.com/BangaloreConnect/bc/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) ListJobs(c *fiber.Ctx) error {
	jobs, err := h.jobs.ListPublic(c.UserContext())
	if err != nil {
		return h.serviceError(c, "list jobs", err)
	}
	return c.JSON(fiber.Map{"success": true, "jobs": jobs})
}

// GetJob also resolves inactive jobs so that shared links keep working.
func (h *Handler) GetJob(c *fiber.Ctx) error {
	job, err := h.jobs.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.serviceError(c, "get job", err)
	}
	return c.JSON(fiber.Map{"success": true, "job": job})
}

func (h *Handler) CreateJob(c *fiber.Ctx) error {
	var in services.JobInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	var postedBy string
	if claims := middleware.ClaimsFromCtx(c); claims != nil {
		postedBy = claims.UserID
	}

	job, err := h.jobs.Create(c.UserContext(), in, postedBy)
	if err != nil {
		return h.serviceError(c, "create job", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Job posted successfully",
		"job":     job,
	})
}

type statusRequest struct {
	Status models.JobStatus `json:"status"`
}

func (h *Handler) UpdateJobStatus(c *fiber.Ctx) error {
	// an absent body is an empty status; the id is checked first
	var req statusRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid request body")
		}
	}

	if _, err := h.jobs.SetStatus(c.UserContext(), c.Params("id"), req.Status); err != nil {
		return h.serviceError(c, "update job status", err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Job status updated"})
}

func (h *Handler) DeleteJob(c *fiber.Ctx) error {
	if err := h.jobs.Delete(c.UserContext(), c.Params("id")); err != nil {
		return h.serviceError(c, "delete job", err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Job deleted successfully"})
}
