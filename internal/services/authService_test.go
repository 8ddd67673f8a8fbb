package services

import (
	"context"
	"testing"

	"github.com/BangaloreConnect/bc/internal/db"
	"github.com/BangaloreConnect/bc/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testAdmin = BootstrapAdmin{
	Username: "admin",
	Name:     "Admin",
	Email:    "admin@bangaloreconnect.com",
	Password: "correct horse",
}

func TestEnsureBootstrapAdmin_Idempotent(t *testing.T) {
	store, cb := newTestStore(t)
	svc := NewIdentityService(store, testAdmin, zap.NewNop())
	ctx := context.Background()

	created, err := svc.EnsureBootstrapAdmin(ctx)
	require.NoError(t, err)
	assert.True(t, created)
	writesAfterFirst := cb.writes.Load()
	assert.Equal(t, int32(1), writesAfterFirst, "first run writes exactly once")

	created, err = svc.EnsureBootstrapAdmin(ctx)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, writesAfterFirst, cb.writes.Load(), "second call must not write")

	users, err := db.NewCollection[models.User](store, UsersCollection, nil).Load(ctx)
	require.NoError(t, err)
	admins := 0
	for _, u := range users {
		if u.Role == models.RoleAdmin {
			admins++
			assert.NotEqual(t, testAdmin.Password, u.Password, "password must be stored hashed")
			assert.True(t, VerifyPassword(testAdmin.Password, u.Password))
			assert.NotEmpty(t, u.ID)
		}
	}
	assert.Equal(t, 1, admins)
}

func TestEnsureBootstrapAdmin_KeepsExistingAdmin(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	users := db.NewCollection[models.User](store, UsersCollection, nil)
	require.NoError(t, users.Save(ctx, []models.User{{ID: "u1", Username: "owner", Role: models.RoleAdmin}}))

	created, err := NewIdentityService(store, testAdmin, zap.NewNop()).EnsureBootstrapAdmin(ctx)
	require.NoError(t, err)
	assert.False(t, created)

	got, err := users.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestEnsureBootstrapAdmin_UsesPrecomputedHash(t *testing.T) {
	store, _ := newTestStore(t)
	hash, err := HashPassword("from-hash")
	require.NoError(t, err)

	admin := testAdmin
	admin.Password = ""
	admin.PasswordHash = hash
	svc := NewIdentityService(store, admin, zap.NewNop())

	_, err = svc.EnsureBootstrapAdmin(context.Background())
	require.NoError(t, err)

	user, err := svc.VerifyCredentials(context.Background(), "admin", "from-hash")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
}

func TestVerifyCredentials(t *testing.T) {
	store, _ := newTestStore(t)
	svc := NewIdentityService(store, testAdmin, zap.NewNop())
	ctx := context.Background()
	_, err := svc.EnsureBootstrapAdmin(ctx)
	require.NoError(t, err)

	t.Run("match", func(t *testing.T) {
		user, err := svc.VerifyCredentials(ctx, " admin ", "correct horse")
		require.NoError(t, err)
		assert.Equal(t, "admin", user.Username)
		assert.Equal(t, models.RoleAdmin, user.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.VerifyCredentials(ctx, "admin", "battery staple")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user gets the same error", func(t *testing.T) {
		_, err := svc.VerifyCredentials(ctx, "nobody", "correct horse")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestVerifyCredentials_StoreFailureIsNotAuthFailure(t *testing.T) {
	fb, err := db.NewFileBackend(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, fb.Write(context.Background(), UsersCollection, []byte("{not json")))
	svc := NewIdentityService(db.NewStore(fb, zap.NewNop()), testAdmin, zap.NewNop())

	_, err = svc.VerifyCredentials(context.Background(), "admin", "correct horse")
	require.Error(t, err)
	assert.ErrorIs(t, err, db.ErrCorruptStore)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}
