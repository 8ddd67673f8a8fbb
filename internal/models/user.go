package models

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is a persisted account record. Password holds the bcrypt hash and is
// written to the users collection, so a User must never be returned as-is
// from an API handler.
type User struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Password   string    `json:"password"`
	Role       Role      `json:"role"`
	Phone      string    `json:"phone"`
	Skills     []string  `json:"skills"`
	Experience string    `json:"experience"`
	CreatedAt  time.Time `json:"createdAt"`
}
