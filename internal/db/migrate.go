package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"

	"github.com/pressly/goose/v3"
)

//go:embed migrations
var migrations embed.FS

// gooseUp and gooseReset are seams for tests.
var (
	gooseUp = func(ctx context.Context, db *sql.DB, dir string) error {
		return goose.UpContext(ctx, db, dir)
	}
	gooseReset = func(ctx context.Context, db *sql.DB, dir string) error {
		return goose.ResetContext(ctx, db, dir)
	}
)

// MigrationsDir returns the embedded migrations directory for a driver.
func MigrationsDir(driver string) (string, error) {
	dir := path.Join("migrations", driver)
	if _, err := fs.Stat(migrations, dir); err != nil {
		return "", fmt.Errorf("no migrations for driver %q", driver)
	}
	return dir, nil
}

// Migrate applies the embedded migrations for the driver. When reset is set,
// every applied migration is rolled back first.
func Migrate(ctx context.Context, sqlDB *sql.DB, driver string, reset bool) error {
	dir, err := MigrationsDir(driver)
	if err != nil {
		return err
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect(driver); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if reset {
		if err := gooseReset(ctx, sqlDB, dir); err != nil {
			return fmt.Errorf("reset migrations: %w", err)
		}
	}

	if err := gooseUp(ctx, sqlDB, dir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
