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
	"github.com/yigit/studentrecords/internal/pkg/dberrors"
	"github.com/yigit/studentrecords/internal/pkg/logger"
)

var studentColumns = []string{"id", "name", "email", "average", "program_id"}

// StudentRepository handles student database operations
type StudentRepository struct {
	db *sqlx.DB
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(database *sqlx.DB) *StudentRepository {
	return &StudentRepository{
		db: database,
		sb: db.StatementBuilder(database),
	}
}

// constraintError translates constraint violations into application errors,
// returning nil for anything else
func constraintError(err error) error {
	switch {
	case dberrors.IsDuplicateKeyError(err):
		return apperrors.ErrStudentIDAlreadyExists
	case dberrors.IsForeignKeyError(err):
		return apperrors.ErrProgramNotFound
	default:
		return nil
	}
}

// List returns students joined with their program name, restricted and
// ordered according to the filter.
func (r *StudentRepository) List(ctx context.Context, filter StudentListFilter) ([]*models.StudentWithProgram, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query, args, err := BuildStudentListQuery(r.sb, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	students := []*models.StudentWithProgram{}
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		logger.Error().Err(err).Str("query", query).Msg("Error executing list students query")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	return students, nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student := &models.Student{}
	if err := r.db.GetContext(ctx, student, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}
	return student, nil
}

func (r *StudentRepository) insert(ctx context.Context, student *models.Student, suffix string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	q := r.sb.Insert("students").
		Columns(studentColumns...).
		Values(student.ID, student.Name, student.Email, student.Average, student.ProgramID)
	if suffix != "" {
		q = q.Suffix(suffix)
	}
	query, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create student query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if mapped := constraintError(err); mapped != nil {
			return 0, mapped
		}
		logger.Error().Err(err).Int64("studentID", student.ID).Msg("Error executing create student query")
		return 0, fmt.Errorf("error creating student: %w", err)
	}
	return res.RowsAffected()
}

// Create inserts a new student with a caller-chosen ID
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	_, err := r.insert(ctx, student, "")
	return err
}

// CreateIfAbsent inserts the student unless a row with the same ID exists.
// It reports whether a row was inserted.
func (r *StudentRepository) CreateIfAbsent(ctx context.Context, student *models.Student) (bool, error) {
	n, err := r.insert(ctx, student, "ON CONFLICT (id) DO NOTHING")
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Update replaces every field of the student stored under id, including
// the primary key itself when student.ID differs from id.
func (r *StudentRepository) Update(ctx context.Context, id int64, student *models.Student) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query, args, err := r.sb.Update("students").
		Set("id", student.ID).
		Set("name", student.Name).
		Set("email", student.Email).
		Set("average", student.Average).
		Set("program_id", student.ProgramID).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if mapped := constraintError(err); mapped != nil {
			return mapped
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error executing update student query")
		return fmt.Errorf("error updating student: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}
	if n == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}
