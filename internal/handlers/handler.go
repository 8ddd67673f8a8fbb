package handlers

import (
	"time"

	"github.com/BangaloreConnect/bc/internal/services"
	"go.uber.org/zap"
)

// Handler serves the job board API. Routes are bound in NewRouter.
type Handler struct {
	identity *services.IdentityService
	tokens   *services.TokenService
	jobs     *services.JobService
	env      string
	l        *zap.Logger
	now      func() time.Time
}

func NewHandler(identity *services.IdentityService, tokens *services.TokenService, jobs *services.JobService, env string, l *zap.Logger) *Handler {
	return &Handler{
		identity: identity,
		tokens:   tokens,
		jobs:     jobs,
		env:      env,
		l:        l,
		now:      time.Now,
	}
}
