package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/BangaloreConnect/bc/internal/db"
	"github.com/BangaloreConnect/bc/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const UsersCollection = "users"

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// VerifyPassword compares a plain password with a hashed password
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// burnPasswordCheck spends the same bcrypt work as a real comparison so that
// unknown usernames are not distinguishable by response time.
func burnPasswordCheck(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = HashPassword("not-a-real-password")
	})
	VerifyPassword(password, dummyHash)
}

// BootstrapAdmin describes the account created when no administrator exists.
type BootstrapAdmin struct {
	Username     string
	Name         string
	Email        string
	Password     string
	PasswordHash string
}

// IdentityService is the only writer of the users collection.
type IdentityService struct {
	users *db.Collection[models.User]
	admin BootstrapAdmin
	l     *zap.Logger
	now   func() time.Time
}

func NewIdentityService(store *db.Store, admin BootstrapAdmin, l *zap.Logger) *IdentityService {
	return &IdentityService{
		users: db.NewCollection[models.User](store, UsersCollection, nil),
		admin: admin,
		l:     l,
		now:   time.Now,
	}
}

func hasAdmin(users []models.User) bool {
	for _, u := range users {
		if u.Role == models.RoleAdmin {
			return true
		}
	}
	return false
}

// EnsureBootstrapAdmin creates the configured administrator unless some user
// already has the admin role. It writes exactly once on first run and never
// afterwards.
func (s *IdentityService) EnsureBootstrapAdmin(ctx context.Context) (bool, error) {
	var admin *models.User
	_, err := s.users.Update(ctx, func(users []models.User) ([]models.User, error) {
		if hasAdmin(users) {
			return nil, db.ErrNoChange
		}

		hash := s.admin.PasswordHash
		if hash == "" {
			var err error
			if hash, err = HashPassword(s.admin.Password); err != nil {
				return nil, fmt.Errorf("hash admin password: %w", err)
			}
		}
		admin = &models.User{
			ID:        uuid.NewString(),
			Username:  s.admin.Username,
			Name:      s.admin.Name,
			Email:     s.admin.Email,
			Password:  hash,
			Role:      models.RoleAdmin,
			Skills:    []string{},
			CreatedAt: s.now().UTC(),
		}
		return append(users, *admin), nil
	})
	if err != nil {
		return false, fmt.Errorf("ensure bootstrap admin: %w", err)
	}
	if admin == nil {
		return false, nil
	}

	s.l.Info("bootstrap admin created", zap.String("username", admin.Username), zap.String("email", admin.Email))
	return true, nil
}

// VerifyCredentials returns the user with the given username when the
// password matches its stored hash.
func (s *IdentityService) VerifyCredentials(ctx context.Context, username, password string) (*models.User, error) {
	users, err := s.users.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	username = strings.TrimSpace(username)
	for i := range users {
		if users[i].Username != username {
			continue
		}
		if !VerifyPassword(password, users[i].Password) {
			return nil, ErrInvalidCredentials
		}
		return &users[i], nil
	}

	burnPasswordCheck(password)
	return nil, ErrInvalidCredentials
}
