package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/BangaloreConnect/bc/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by a session token.
type Claims struct {
	UserID   string      `json:"id"`
	Username string      `json:"username,omitempty"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) IsAdmin() bool {
	return c != nil && c.Role == models.RoleAdmin
}

// TokenService issues and verifies stateless HS256 session tokens.
type TokenService struct {
	secret   []byte
	adminTTL time.Duration
	userTTL  time.Duration
	now      func() time.Time
}

func NewTokenService(secret string, adminTTL, userTTL time.Duration) (*TokenService, error) {
	if len(secret) == 0 {
		return nil, errors.New("token secret is empty")
	}
	return &TokenService{
		secret:   []byte(secret),
		adminTTL: adminTTL,
		userTTL:  userTTL,
		now:      time.Now,
	}, nil
}

func (s *TokenService) ttl(role models.Role) time.Duration {
	if role == models.RoleAdmin {
		return s.adminTTL
	}
	return s.userTTL
}

// Issue signs a token for user. Admin sessions use the admin TTL, every other
// role the user TTL.
func (s *TokenService) Issue(user *models.User) (string, time.Time, error) {
	now := s.now().UTC()
	expires := now.Add(s.ttl(user.Role))
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return token, expires, nil
}

// Verify checks signature, algorithm and expiry against the current clock.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
	if !token.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

func RequireAdmin(claims *Claims) error {
	if !claims.IsAdmin() {
		return ErrForbidden
	}
	return nil
}
