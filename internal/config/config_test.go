package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"APP_ENV", "PORT", "DATA_DIR", "STATIC_DIR", "JWT_SECRET", "SEED_JOBS", "SEED_JOBS_PATH",
	"STORE_BACKEND", "ADMIN_USERNAME", "ADMIN_NAME", "ADMIN_EMAIL", "ADMIN_PASSWORD",
	"ADMIN_PASSWORD_HASH", "ADMIN_TOKEN_TTL", "USER_TOKEN_TTL", "MONGO_URI", "MONGO_DATABASE",
	"MONGO_COLLECTION", "MINIO_ENDPOINT", "MINIO_ACCESS_KEY", "MINIO_SECRET_KEY", "MINIO_BUCKET",
	"MINIO_USE_SSL", "ALLOWED_ORIGINS",
}

// clearEnv blanks every key Load reads; blank values count as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_DevelopmentDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, BackendFile, cfg.StoreBackend)
	assert.Equal(t, 24*time.Hour, cfg.AdminTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.UserTokenTTL)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.Equal(t, insecureJWTSecret, cfg.JWTSecret)
	assert.Equal(t, insecureAdminPassword, cfg.Admin.Password)
	assert.True(t, cfg.SeedJobs)
	assert.False(t, cfg.MirrorEnabled())
	assert.Len(t, cfg.Warnings, 2)
}

func TestLoad_ProductionRequiresSecrets(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	t.Setenv("JWT_SECRET", "s3cret")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_PASSWORD")

	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Empty(t, cfg.Warnings)
	assert.False(t, cfg.SeedJobs)
	assert.Empty(t, cfg.AllowedOrigins)
}

func TestLoad_ExplicitValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "k")
	t.Setenv("ADMIN_PASSWORD", "pw")
	t.Setenv("ADMIN_TOKEN_TTL", "2h")
	t.Setenv("SEED_JOBS", "false")
	t.Setenv("STORE_BACKEND", "Mongo")
	t.Setenv("ALLOWED_ORIGINS", " https://bangaloreconnect.com, ,https://www.bangaloreconnect.com ")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2*time.Hour, cfg.AdminTokenTTL)
	assert.False(t, cfg.SeedJobs)
	assert.Equal(t, BackendMongo, cfg.StoreBackend)
	assert.Equal(t, []string{"https://bangaloreconnect.com", "https://www.bangaloreconnect.com"}, cfg.AllowedOrigins)
	assert.Empty(t, cfg.Warnings)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "bad ttl", key: "ADMIN_TOKEN_TTL", val: "soon"},
		{name: "negative ttl", key: "USER_TOKEN_TTL", val: "-1h"},
		{name: "bad bool", key: "SEED_JOBS", val: "maybe"},
		{name: "bad backend", key: "STORE_BACKEND", val: "postgres"},
		{name: "bad env", key: "APP_ENV", val: "staging"},
		{name: "minio without keys", key: "MINIO_ENDPOINT", val: "localhost:9000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			require.Error(t, err)
		})
	}
}
