// Package config reads the server settings from the environment. A .env file,
// if present, is loaded into the environment by main before Load runs.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BangaloreConnect/bc/internal/storage"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"

	BackendFile  = "file"
	BackendMongo = "mongo"

	// Development-only fallbacks. Load refuses them in production.
	insecureJWTSecret     = "dev-secret-change-me"
	insecureAdminPassword = "admin123"
)

type AdminConfig struct {
	Username     string
	Name         string
	Email        string
	Password     string
	PasswordHash string // bcrypt hash, takes precedence over Password
}

type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

type Config struct {
	Env       string
	Port      string
	DataDir   string
	StaticDir string

	JWTSecret     string
	AdminTokenTTL time.Duration
	UserTokenTTL  time.Duration
	Admin         AdminConfig

	AllowedOrigins []string
	SeedJobs       bool
	SeedJobsPath   string

	StoreBackend string
	Mongo        MongoConfig
	Minio        storage.MinioConfig // mirroring is off when Endpoint is empty

	// Warnings lists insecure fallbacks that were applied; main logs them once
	// the logger exists.
	Warnings []string
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func (c *Config) MirrorEnabled() bool {
	return c.Minio.Endpoint != ""
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := getenv(key, "")
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s: must be positive, got %s", key, v)
	}
	return d, nil
}

func getBool(key string, def bool) (bool, error) {
	v := getenv(key, "")
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:          strings.ToLower(getenv("APP_ENV", EnvDevelopment)),
		Port:         getenv("PORT", "5000"),
		DataDir:      getenv("DATA_DIR", "data"),
		StaticDir:    getenv("STATIC_DIR", ""),
		JWTSecret:    getenv("JWT_SECRET", ""),
		SeedJobsPath: getenv("SEED_JOBS_PATH", ""),
		StoreBackend: strings.ToLower(getenv("STORE_BACKEND", BackendFile)),
		Admin: AdminConfig{
			Username:     getenv("ADMIN_USERNAME", "admin"),
			Name:         getenv("ADMIN_NAME", "Admin"),
			Email:        getenv("ADMIN_EMAIL", "admin@bangaloreconnect.com"),
			Password:     getenv("ADMIN_PASSWORD", ""),
			PasswordHash: getenv("ADMIN_PASSWORD_HASH", ""),
		},
		Mongo: MongoConfig{
			URI:        getenv("MONGO_URI", "mongodb://localhost:27017"),
			Database:   getenv("MONGO_DATABASE", "bangalore_connect"),
			Collection: getenv("MONGO_COLLECTION", "collections"),
		},
		Minio: storage.MinioConfig{
			Endpoint:  getenv("MINIO_ENDPOINT", ""),
			AccessKey: getenv("MINIO_ACCESS_KEY", ""),
			SecretKey: getenv("MINIO_SECRET_KEY", ""),
			Bucket:    getenv("MINIO_BUCKET", "bc-snapshots"),
		},
	}

	var err error
	if cfg.AdminTokenTTL, err = getDuration("ADMIN_TOKEN_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.UserTokenTTL, err = getDuration("USER_TOKEN_TTL", 7*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.SeedJobs, err = getBool("SEED_JOBS", !cfg.IsProduction()); err != nil {
		return nil, err
	}
	if cfg.Minio.UseSSL, err = getBool("MINIO_USE_SSL", false); err != nil {
		return nil, err
	}

	if cfg.Env != EnvProduction && cfg.Env != EnvDevelopment {
		return nil, fmt.Errorf("APP_ENV: unknown environment %q", cfg.Env)
	}
	if cfg.StoreBackend != BackendFile && cfg.StoreBackend != BackendMongo {
		return nil, fmt.Errorf("STORE_BACKEND: unknown backend %q", cfg.StoreBackend)
	}

	if origins := getenv("ALLOWED_ORIGINS", ""); origins != "" {
		cfg.AllowedOrigins = splitList(origins)
	} else if !cfg.IsProduction() {
		cfg.AllowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:5500", "http://localhost:5000"}
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("JWT_SECRET environment variable not set")
		}
		cfg.JWTSecret = insecureJWTSecret
		cfg.Warnings = append(cfg.Warnings, "JWT_SECRET not set, using the insecure development secret")
	}

	if cfg.Admin.Password == "" && cfg.Admin.PasswordHash == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH environment variable not set")
		}
		cfg.Admin.Password = insecureAdminPassword
		cfg.Warnings = append(cfg.Warnings, "ADMIN_PASSWORD not set, bootstrap admin uses the well-known development password")
	}

	if cfg.MirrorEnabled() && (cfg.Minio.AccessKey == "" || cfg.Minio.SecretKey == "") {
		return nil, fmt.Errorf("MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required when MINIO_ENDPOINT is set")
	}

	return cfg, nil
}
