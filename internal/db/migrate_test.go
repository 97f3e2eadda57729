package db

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsDir(t *testing.T) {
	for _, driver := range []string{DriverMySQL, DriverPostgres} {
		dir, err := MigrationsDir(driver)
		require.NoError(t, err)

		files, err := fs.Glob(migrations, dir+"/*.sql")
		require.NoError(t, err)
		assert.Len(t, files, 2, driver)
	}

	_, err := MigrationsDir("oracle")
	assert.Error(t, err)
}

func TestMigrate(t *testing.T) {
	origUp, origReset := gooseUp, gooseReset
	t.Cleanup(func() { gooseUp, gooseReset = origUp, origReset })

	var calls []string
	gooseUp = func(_ context.Context, _ *sql.DB, dir string) error {
		calls = append(calls, "up "+dir)
		return nil
	}
	gooseReset = func(_ context.Context, _ *sql.DB, dir string) error {
		calls = append(calls, "reset "+dir)
		return nil
	}

	require.NoError(t, Migrate(context.Background(), nil, DriverPostgres, false))
	assert.Equal(t, []string{"up migrations/postgres"}, calls)

	calls = nil
	require.NoError(t, Migrate(context.Background(), nil, DriverMySQL, true))
	assert.Equal(t, []string{"reset migrations/mysql", "up migrations/mysql"}, calls)
}

func TestMigrate_PropagatesErrors(t *testing.T) {
	origUp := gooseUp
	t.Cleanup(func() { gooseUp = origUp })

	gooseUp = func(context.Context, *sql.DB, string) error {
		return errors.New("table exists")
	}

	err := Migrate(context.Background(), nil, DriverMySQL, false)
	assert.ErrorContains(t, err, "apply migrations: table exists")

	assert.Error(t, Migrate(context.Background(), nil, "sqlite", false))
}
