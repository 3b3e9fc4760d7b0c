package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"           // registers the "postgres" driver
	_ "github.com/mattn/go-sqlite3" // registers the "sqlite3" driver

	"github.com/yigit/studentrecords/internal/config"
	"github.com/yigit/studentrecords/internal/pkg/logger"
)

// Options describes how to reach the relational store
type Options struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// OptionsFromConfig extracts store options from the application config
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	lifetime, err := time.ParseDuration(cfg.Database.ConnMaxLifetime)
	if err != nil {
		return Options{}, fmt.Errorf("failed to parse connection max lifetime: %w", err)
	}
	return Options{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: lifetime,
	}, nil
}

// Open connects to the store and verifies the connection.
// SQLite is limited to a single connection with foreign keys enforced.
func Open(ctx context.Context, opts Options) (*sqlx.DB, error) {
	dsn := opts.DSN
	maxOpen := opts.MaxOpenConns
	if opts.Driver == config.DriverSQLite {
		dsn = sqliteDSN(dsn)
		maxOpen = 1
	}
	if maxOpen < 1 {
		maxOpen = 1
	}

	database, err := sqlx.Open(opts.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", opts.Driver, err)
	}
	database.SetMaxOpenConns(maxOpen)
	database.SetMaxIdleConns(maxOpen)
	if opts.ConnMaxLifetime > 0 {
		database.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := database.PingContext(pingCtx); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to establish database connection: %w", err)
	}

	logger.Debug().Str("driver", opts.Driver).Int("maxOpenConns", maxOpen).Msg("Database connection opened")
	return database, nil
}

// sqliteDSN appends the foreign key pragma unless the caller already set it
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on"
}

// StatementBuilder returns a squirrel builder using the placeholder style of the driver
func StatementBuilder(database *sqlx.DB) sq.StatementBuilderType {
	if sqlx.BindType(database.DriverName()) == sqlx.DOLLAR {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// TransactionFn is a function that executes within a transaction
type TransactionFn func(ctx context.Context, tx *sqlx.Tx) error

// WithTransaction runs fn inside a transaction, rolling back on error or panic
func WithTransaction(ctx context.Context, database *sqlx.DB, fn TransactionFn) error {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
	}

	tx, err := database.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error().Err(rbErr).Msg("Failed to rollback transaction")
			return fmt.Errorf("error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
