package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"schoolapi/docs"
	"schoolapi/internal/auth"
	"schoolapi/internal/cache"
	"schoolapi/internal/config"
	"schoolapi/internal/db"
	"schoolapi/internal/handler"
	"schoolapi/internal/logging"
	"schoolapi/internal/repository"
	"schoolapi/internal/router"
	"schoolapi/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title School Records API
// @version 1.0
// @description Student, teacher, class and subject records with session token authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("database init: %w", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	defer sqlDB.Close()

	if cfg.ResetDB {
		log.Warn("RESET_DB set, rolling back all migrations")
	}
	if err := db.Migrate(ctx, sqlDB, cfg.DBDriver, cfg.ResetDB); err != nil {
		return err
	}

	sessions, closeSessions, err := newSessionRegistry(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeSessions()

	hasher, err := auth.NewHasher(auth.HasherConfig{
		Algorithm:  cfg.HashAlgorithm,
		Iterations: cfg.PBKDF2Iterations,
		BcryptCost: cfg.BcryptCost,
	})
	if err != nil {
		return fmt.Errorf("password hasher: %w", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	studentRepo := repository.NewStudentRepository(gormDB)
	teacherRepo := repository.NewTeacherRepository(gormDB)
	classRepo := repository.NewClassRepository(gormDB)
	subjectRepo := repository.NewSubjectRepository(gormDB)

	// Initialize services
	phones := service.NewPhoneNormalizer(cfg.PhoneRegion)
	authService := service.NewAuthService(userRepo, hasher, sessions, service.AuthPolicy{
		MinPasswordLength: cfg.MinPasswordLength,
		DefaultRole:       cfg.DefaultRole,
	}, log)
	studentService := service.NewStudentService(studentRepo, phones, log)
	teacherService := service.NewTeacherService(teacherRepo, phones, log)
	classService := service.NewClassService(classRepo, log)
	subjectService := service.NewSubjectService(subjectRepo, log)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	router.Register(e, cfg, log, authService, router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Students: handler.NewStudentHandler(studentService),
		Teachers: handler.NewTeacherHandler(teacherService),
		Classes:  handler.NewClassHandler(classService),
		Subjects: handler.NewSubjectHandler(subjectService),
	})

	docs.SwaggerInfo.BasePath = cfg.APIBasePath
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	addr := ":" + cfg.ServerPort
	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", addr, "swagger", "/swagger/index.html")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server start: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// newSessionRegistry builds the configured session backend and a function
// releasing its resources.
func newSessionRegistry(ctx context.Context, cfg *config.Config, log *slog.Logger) (auth.Registry, func(), error) {
	switch cfg.SessionBackend {
	case config.SessionBackendMemory:
		log.Info("sessions kept in memory", "ttl", cfg.SessionTTL)
		return auth.NewMemoryRegistry(cfg.SessionTTL), func() {}, nil
	case config.SessionBackendRedis:
		cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := cacheClient.Ping(ctx); err != nil {
			_ = cacheClient.Close()
			return nil, nil, fmt.Errorf("session store: %w", err)
		}
		log.Info("sessions kept in redis", "addr", cfg.RedisAddr, "ttl", cfg.SessionTTL)
		return auth.NewRedisRegistry(cacheClient, cfg.SessionTTL), func() { _ = cacheClient.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported session backend %q", cfg.SessionBackend)
	}
}
