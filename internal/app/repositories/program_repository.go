package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/yigit/studentrecords/internal/app/models"
	"github.com/yigit/studentrecords/internal/db"
	"github.com/yigit/studentrecords/internal/pkg/apperrors"
	"github.com/yigit/studentrecords/internal/pkg/logger"
)

var programColumns = []string{"id", "name", "campus"}

// ProgramRepository handles program database operations
type ProgramRepository struct {
	db *sqlx.DB
	sb squirrel.StatementBuilderType
}

// NewProgramRepository creates a new ProgramRepository
func NewProgramRepository(database *sqlx.DB) *ProgramRepository {
	return &ProgramRepository{
		db: database,
		sb: db.StatementBuilder(database),
	}
}

// GetAll returns every program in natural storage order
func (r *ProgramRepository) GetAll(ctx context.Context) ([]*models.Program, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query, args, err := r.sb.Select(programColumns...).From("programs").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all programs query: %w", err)
	}

	programs := []*models.Program{}
	if err := r.db.SelectContext(ctx, &programs, query, args...); err != nil {
		logger.Error().Err(err).Msg("Error executing get all programs query")
		return nil, fmt.Errorf("error querying programs: %w", err)
	}
	return programs, nil
}

// GetByID retrieves a program by ID
func (r *ProgramRepository) GetByID(ctx context.Context, id int64) (*models.Program, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query, args, err := r.sb.Select(programColumns...).
		From("programs").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get program query: %w", err)
	}

	program := &models.Program{}
	if err := r.db.GetContext(ctx, program, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrProgramNotFound
		}
		logger.Error().Err(err).Int64("programID", id).Msg("Error scanning program row")
		return nil, fmt.Errorf("error getting program by ID: %w", err)
	}
	return program, nil
}

// CreateIfAbsent inserts the program unless a row with the same ID exists.
// It reports whether a row was inserted.
func (r *ProgramRepository) CreateIfAbsent(ctx context.Context, program *models.Program) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query, args, err := r.sb.Insert("programs").
		Columns(programColumns...).
		Values(program.ID, program.Name, program.Campus).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build create program query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("error creating program: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading affected rows: %w", err)
	}
	return n > 0, nil
}
