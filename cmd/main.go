package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/BangaloreConnect/bc/internal/config"
	"github.com/BangaloreConnect/bc/internal/db"
	"github.com/BangaloreConnect/bc/internal/handlers"
	"github.com/BangaloreConnect/bc/internal/logger"
	"github.com/BangaloreConnect/bc/internal/models"
	"github.com/BangaloreConnect/bc/internal/services"
	"github.com/BangaloreConnect/bc/internal/storage"
	"github.com/BangaloreConnect/bc/internal/utils"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	l, err := logger.New(!cfg.IsProduction())
	if err != nil {
		log.Fatalf("error initializing logger: %v", err)
	}
	defer l.Sync()

	for _, w := range cfg.Warnings {
		l.Warn(w)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		backend      db.Backend
		mongoBackend *db.MongoBackend
	)
	switch cfg.StoreBackend {
	case config.BackendMongo:
		client, err := db.ConnectMongoDB(ctx, cfg.Mongo.URI)
		if err != nil {
			l.Fatal("error connecting to MongoDB", zap.Error(err))
		}
		mongoBackend = db.NewMongoBackend(client, cfg.Mongo.Database, cfg.Mongo.Collection)
		backend = mongoBackend
		l.Info("using MongoDB record store", zap.String("database", cfg.Mongo.Database))
	default:
		fb, err := db.NewFileBackend(cfg.DataDir)
		if err != nil {
			l.Fatal("error preparing data directory", zap.String("dir", cfg.DataDir), zap.Error(err))
		}
		backend = fb
		l.Info("using file record store", zap.String("dir", fb.Dir()))
	}

	var pool *utils.WorkerPool
	if cfg.MirrorEnabled() {
		mirror, err := storage.NewMinioMirror(ctx, cfg.Minio, l)
		if err != nil {
			l.Fatal("error initializing MinIO mirror", zap.Error(err))
		}
		pool = utils.NewWorkerPool(runtime.NumCPU(), l)
		backend = db.NewMirroredBackend(backend, mirror, pool, l)
		l.Info("mirroring snapshots to MinIO", zap.String("endpoint", cfg.Minio.Endpoint), zap.String("bucket", cfg.Minio.Bucket))
	}

	store := db.NewStore(backend, l)

	var seed []models.Job
	if cfg.SeedJobs {
		if seed, err = services.LoadSeedJobs(cfg.SeedJobsPath, time.Now()); err != nil {
			l.Fatal("error loading seed jobs", zap.Error(err))
		}
	}

	identity := services.NewIdentityService(store, services.BootstrapAdmin{
		Username:     cfg.Admin.Username,
		Name:         cfg.Admin.Name,
		Email:        cfg.Admin.Email,
		Password:     cfg.Admin.Password,
		PasswordHash: cfg.Admin.PasswordHash,
	}, l)
	tokens, err := services.NewTokenService(cfg.JWTSecret, cfg.AdminTokenTTL, cfg.UserTokenTTL)
	if err != nil {
		l.Fatal("error initializing token service", zap.Error(err))
	}
	jobs := services.NewJobService(store, seed, l)

	// fail fast on an unreadable store
	err = utils.RunParallel(ctx,
		utils.Task{Name: "bootstrap admin", Run: func(ctx context.Context) error {
			_, err := identity.EnsureBootstrapAdmin(ctx)
			return err
		}},
		utils.Task{Name: "load jobs", Run: func(ctx context.Context) error {
			_, err := jobs.ListAll(ctx)
			return err
		}},
	)
	if err != nil {
		l.Fatal("error initializing store", zap.Error(err))
	}

	app := handlers.NewRouter(handlers.NewHandler(identity, tokens, jobs, cfg.Env, l), handlers.RouterOptions{
		AllowedOrigins: cfg.AllowedOrigins,
		StaticDir:      cfg.StaticDir,
		Logger:         l,
	})

	go func() {
		l.Info("server listening", zap.String("port", cfg.Port), zap.String("environment", cfg.Env))
		if err := app.Listen(":" + cfg.Port); err != nil {
			l.Fatal("server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	l.Info("shutting down")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		l.Error("error shutting down server", zap.Error(err))
	}
	if pool != nil {
		// drain pending snapshot uploads
		pool.Close()
	}
	if mongoBackend != nil {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := mongoBackend.Close(closeCtx); err != nil {
			l.Error("error disconnecting from MongoDB", zap.Error(err))
		}
		closeCancel()
	}
}
