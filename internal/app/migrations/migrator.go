package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/yigit/studentrecords/internal/db"
)

//go:embed sql/*.sql
var migrationsFS embed.FS

// Migrator applies the embedded schema migrations
type Migrator struct {
	db     *sqlx.DB
	sb     sq.StatementBuilderType
	files  fs.FS
	logger zerolog.Logger
}

// NewMigrator creates a new migrator over the embedded migration files
func NewMigrator(database *sqlx.DB, lgr zerolog.Logger) *Migrator {
	return &Migrator{
		db:     database,
		sb:     db.StatementBuilder(database),
		files:  migrationsFS,
		logger: lgr,
	}
}

// ensureMigrationTableExists creates the migration tracking table if it doesn't exist
func (m *Migrator) ensureMigrationTableExists(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}
	return nil
}

// AppliedVersions returns the recorded migration versions in ascending order
func (m *Migrator) AppliedVersions(ctx context.Context) ([]string, error) {
	if err := m.ensureMigrationTableExists(ctx); err != nil {
		return nil, err
	}
	query, args, err := m.sb.Select("version").From("schema_migrations").OrderBy("version ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build applied versions query: %w", err)
	}
	var versions []string
	if err := m.db.SelectContext(ctx, &versions, query, args...); err != nil {
		return nil, fmt.Errorf("failed to read applied migrations: %w", err)
	}
	return versions, nil
}

// pending lists migration file names in version order
func (m *Migrator) pending() ([]string, error) {
	entries, err := fs.ReadDir(m.files, "sql")
	if err != nil {
		return nil, fmt.Errorf("failed to read migration directory: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Migrate applies every migration not yet recorded in schema_migrations.
// Each file runs in its own transaction together with its version record.
func (m *Migrator) Migrate(ctx context.Context) error {
	applied, err := m.AppliedVersions(ctx)
	if err != nil {
		return err
	}
	done := make(map[string]bool, len(applied))
	for _, v := range applied {
		done[v] = true
	}

	names, err := m.pending()
	if err != nil {
		return err
	}

	for _, name := range names {
		version := strings.SplitN(name, "_", 2)[0]
		if done[version] {
			m.logger.Debug().Str("migration", name).Msg("Migration already applied, skipping")
			continue
		}
		if err := m.apply(ctx, version, name); err != nil {
			return err
		}
		m.logger.Info().Str("migration", name).Msg("Migration applied")
	}
	return nil
}

func (m *Migrator) apply(ctx context.Context, version, name string) error {
	content, err := fs.ReadFile(m.files, path.Join("sql", name))
	if err != nil {
		return fmt.Errorf("failed to read migration file %s: %w", name, err)
	}

	record, args, err := m.sb.Insert("schema_migrations").Columns("version").Values(version).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build migration record: %w", err)
	}

	return db.WithTransaction(ctx, m.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("migration %s failed: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx, record, args...); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", version, err)
		}
		return nil
	})
}
