package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"schoolapi/internal/auth"
	"schoolapi/internal/config"
	"schoolapi/internal/db"
	apperrors "schoolapi/internal/errors"
	"schoolapi/internal/logging"
	"schoolapi/internal/repository"
	"schoolapi/internal/service"
)

func main() {
	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	log.Info("starting seed")

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("database init: %w", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	defer sqlDB.Close()

	if err := db.Migrate(ctx, sqlDB, cfg.DBDriver, false); err != nil {
		return err
	}
	log.Info("database migrations completed")

	hasher, err := auth.NewHasher(auth.HasherConfig{
		Algorithm:  cfg.HashAlgorithm,
		Iterations: cfg.PBKDF2Iterations,
		BcryptCost: cfg.BcryptCost,
	})
	if err != nil {
		return fmt.Errorf("password hasher: %w", err)
	}

	// Seeding never hands out the issued tokens, so they live in a throwaway registry.
	authService := service.NewAuthService(repository.NewUserRepository(gormDB), hasher,
		auth.NewMemoryRegistry(0), service.AuthPolicy{
			MinPasswordLength: cfg.MinPasswordLength,
			DefaultRole:       cfg.DefaultRole,
		}, log)

	admin := adminFromEnv()
	if err := seedAdmin(ctx, authService, admin); err != nil {
		return err
	}
	log.Info("admin account ready", "username", admin.Username)

	source := os.Getenv("SEED_FILE")
	if source == "" {
		log.Info("seed completed, no SEED_FILE given")
		return nil
	}

	fixtures, err := loadFixtures(ctx, source)
	if err != nil {
		return fmt.Errorf("load fixtures from %s: %w", source, err)
	}

	phones := service.NewPhoneNormalizer(cfg.PhoneRegion)
	s := &seeder{
		classes:  service.NewClassService(repository.NewClassRepository(gormDB), log),
		teachers: service.NewTeacherService(repository.NewTeacherRepository(gormDB), phones, log),
		students: service.NewStudentService(repository.NewStudentRepository(gormDB), phones, log),
		subjects: service.NewSubjectService(repository.NewSubjectRepository(gormDB), log),
	}

	stats, err := s.run(ctx, fixtures)
	if err != nil {
		return fmt.Errorf("seed fixtures: %w", err)
	}
	log.Info("seed completed", "created", stats.created, "skipped", stats.skipped)
	return nil
}

type adminAccount struct {
	Username string
	Email    string
	FullName string
	Password string
}

func adminFromEnv() adminAccount {
	return adminAccount{
		Username: envOr("SEED_ADMIN_USERNAME", "admin"),
		Email:    envOr("SEED_ADMIN_EMAIL", "admin@school.local"),
		FullName: envOr("SEED_ADMIN_FULL_NAME", "Administrator"),
		Password: envOr("SEED_ADMIN_PASSWORD", "admin123"),
	}
}

// seedAdmin registers the admin account unless the username already exists.
func seedAdmin(ctx context.Context, authService service.AuthService, admin adminAccount) error {
	_, _, err := authService.Register(ctx, admin.Username, admin.Email, admin.FullName, admin.Password)
	if errors.Is(err, apperrors.ErrUsernameTaken) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("register %s: %w", admin.Username, err)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
