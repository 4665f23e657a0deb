// Package app wires configuration, stores and services into the Application
// container shared by the HTTP layer.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"recruit-api/config"
	"recruit-api/docs"
	"recruit-api/internal/api/handlers"
	"recruit-api/internal/api/middleware"
	"recruit-api/internal/auth"
	"recruit-api/internal/database"
	"recruit-api/internal/notify"
	"recruit-api/internal/ratelimit"
	"recruit-api/internal/scheduler"
	"recruit-api/internal/services"
	"recruit-api/internal/storage"
	"recruit-api/internal/storage/files"
	"recruit-api/internal/storage/postgres"
	"recruit-api/internal/storage/redisstore"
	"recruit-api/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Services groups the business services used by the handlers.
type Services struct {
	Users        services.UserService
	Jobs         services.JobService
	Applications services.JobApplicationService
	Profiles     services.ProfileService
	Settings     services.SettingsService
	Dashboard    services.DashboardService
}

// Application holds core application dependencies.
type Application struct {
	Config      *config.Config
	DBPool      *pgxpool.Pool
	RedisClient *redis.Client
	Validator   *validator.Validate

	Tokens      *auth.TokenManager
	Sessions    storage.SessionStore
	AuthLimiter middleware.Limiter // nil when rate limiting is disabled
	Services    Services
	Probes      map[string]handlers.HealthProbe
	OpenAPI     []byte

	notifier  *notify.Notifier
	scheduler *scheduler.Scheduler
}

// New connects to Postgres and Redis and builds every service.
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	if _, err := docs.Load(ctx); err != nil {
		return nil, err
	}

	pool, err := database.NewConnectionPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
	}

	rdb, err := database.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		pool.Close()
		return nil, err
	}

	a := &Application{
		Config:      cfg,
		DBPool:      pool,
		RedisClient: rdb,
		Validator:   validation.New(),
		OpenAPI:     docs.Raw(),
		Probes: map[string]handlers.HealthProbe{
			"database": pool.Ping,
			"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
	}
	if err := a.build(ctx); err != nil {
		a.closeClients()
		return nil, err
	}
	return a, nil
}

func (a *Application) build(ctx context.Context) error {
	cfg := a.Config

	store := postgres.NewStore(a.DBPool)
	repos := store.Repositories()
	sessions := redisstore.NewSessionStore(a.RedisClient, "recruit")
	a.Sessions = sessions
	a.Tokens = auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)

	backend, err := newFileStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	documents := files.NewManager(backend, files.Policy{
		MaxBytes:          cfg.Storage.MaxUploadBytes,
		AllowedExtensions: cfg.Storage.AllowedExtensions,
	})

	mailer, err := newMailer(cfg.SMTP)
	if err != nil {
		return err
	}
	a.notifier = notify.NewNotifier(mailer, cfg.SMTP.Organization, cfg.SMTP.PoolSize)

	jobs := services.NewJobService(repos.Jobs, cfg.Scheduler.ExpiredJobGrace)
	a.Services = Services{
		Users: services.NewUserService(repos, store, a.Tokens, sessions, cfg.JWT.RefreshTTL),
		Jobs:  jobs,
		Applications: services.NewJobApplicationService(repos, store, documents, a.notifier, services.JobApplicationOptions{
			StrictTransitions: cfg.Applications.StrictTransitions,
		}),
		Profiles:  services.NewProfileService(repos, store, documents),
		Settings:  services.NewSettingsService(repos.Lookups),
		Dashboard: services.NewDashboardService(repos.Jobs, repos.Applications),
	}

	if cfg.RateLimit.Enabled {
		limiter, err := ratelimit.NewFixedWindowLimiter(a.RedisClient, "recruit:ratelimit", cfg.RateLimit.AuthPerWindow, cfg.RateLimit.Window)
		if err != nil {
			return err
		}
		a.AuthLimiter = limiter
	}

	if cfg.Scheduler.Enabled {
		sched, err := scheduler.New(jobs, cfg.Scheduler.ExpireJobsCron)
		if err != nil {
			return err
		}
		a.scheduler = sched
	}
	return nil
}

func newFileStore(ctx context.Context, cfg config.StorageConfig) (files.Store, error) {
	switch cfg.Driver {
	case "", "local":
		return files.NewLocalStore(cfg.LocalDir, cfg.PublicBaseURL)
	case "minio":
		m := cfg.Minio
		return files.NewMinioStore(ctx, m.Endpoint, m.AccessKey, m.SecretKey, m.Bucket, m.UseSSL, cfg.PublicBaseURL)
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}

func newMailer(cfg config.SMTPConfig) (notify.Mailer, error) {
	if !cfg.Enabled {
		slog.Info("smtp disabled, status emails will be logged")
		return notify.LogMailer{}, nil
	}
	return notify.NewSMTPMailer(cfg)
}

// StartBackground starts the cron sweeps.
func (a *Application) StartBackground() {
	if a.scheduler != nil {
		a.scheduler.Start()
	}
}

// Close stops background work, waits for queued emails and closes the
// clients. ctx bounds the wait.
func (a *Application) Close(ctx context.Context) {
	if a.scheduler != nil {
		a.scheduler.Stop(ctx)
	}
	if a.notifier != nil {
		done := make(chan struct{})
		go func() {
			a.notifier.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-ctx.Done():
			slog.Warn("shutdown before all status emails were sent")
		}
	}
	a.closeClients()
}

func (a *Application) closeClients() {
	if a.RedisClient != nil {
		if err := a.RedisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", "error", err)
		}
	}
	if a.DBPool != nil {
		a.DBPool.Close()
	}
}
