package testutil

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/yigit/studentrecords/internal/app/migrations"
	"github.com/yigit/studentrecords/internal/app/repositories"
	"github.com/yigit/studentrecords/internal/config"
	"github.com/yigit/studentrecords/internal/db"
	"github.com/yigit/studentrecords/internal/seed"
)

// OpenInMemoryDB opens an in-memory SQLite database and applies migrations.
// The name must be unique per test so shared-cache databases do not collide.
func OpenInMemoryDB(t *testing.T, name string) *sqlx.DB {
	t.Helper()
	ctx := context.Background()
	d, err := db.Open(ctx, db.Options{
		Driver: config.DriverSQLite,
		DSN:    "file:" + name + "?mode=memory&cache=shared",
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	if err := migrations.NewMigrator(d, zerolog.Nop()).Migrate(ctx); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return d
}

// OpenSeededDB is OpenInMemoryDB followed by the default seed data
func OpenSeededDB(t *testing.T, name string) (*sqlx.DB, *repositories.Repositories) {
	t.Helper()
	d := OpenInMemoryDB(t, name)
	repos := repositories.NewRepositories(d)
	if err := seed.CreateDefaultData(context.Background(), repos, zerolog.Nop()); err != nil {
		t.Fatalf("seed test db: %v", err)
	}
	return d, repos
}
