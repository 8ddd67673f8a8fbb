package handlers

import (
	"path/filepath"
	"strings"

	"github.com/BangaloreConnect/bc/internal/middleware"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

type RouterOptions struct {
	// AllowedOrigins enables CORS for the listed origins; empty disables it.
	AllowedOrigins []string
	// StaticDir, when set, is served at / with index.html as the fallback
	// for any non-API GET.
	StaticDir string
	Logger    *zap.Logger
}

func NewRouter(h *Handler, opts RouterOptions) *fiber.App {
	l := opts.Logger
	if l == nil {
		l = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		AppName:               "bangalore-connect",
		DisableStartupMessage: true,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ErrorHandler:          ErrorHandler(l),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger(l))
	if len(opts.AllowedOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins: strings.Join(opts.AllowedOrigins, ","),
			AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		}))
	}

	api := app.Group("/api")
	api.Get("/health", h.Health)
	api.Post("/admin/login", h.AdminLogin)

	requireAdmin := []fiber.Handler{middleware.AuthMiddleware(h.tokens), middleware.AdminMiddleware}

	api.Get("/jobs", h.ListJobs)
	api.Get("/jobs/:id", h.GetJob)
	api.Post("/jobs", append(requireAdmin, h.CreateJob)...)
	api.Patch("/jobs/:id/status", append(requireAdmin, h.UpdateJobStatus)...)
	api.Delete("/jobs/:id", append(requireAdmin, h.DeleteJob)...)

	api.Get("/admin/jobs", append(requireAdmin, h.AdminListJobs)...)
	api.Get("/admin/stats", append(requireAdmin, h.AdminStats)...)

	api.Use(func(c *fiber.Ctx) error {
		return fail(c, fiber.StatusNotFound, "Route not found")
	})

	if opts.StaticDir != "" {
		app.Static("/", opts.StaticDir)
		index := filepath.Join(opts.StaticDir, "index.html")
		app.Get("/*", func(c *fiber.Ctx) error {
			return c.SendFile(index)
		})
	}

	return app
}
