package services

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidCredentials never says whether the username or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
	ErrForbidden      = errors.New("admin access required")

	ErrJobNotFound = errors.New("job not found")
)

// ValidationError reports request fields that are missing or invalid.
type ValidationError struct {
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}
