package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yigit/studentrecords/internal/app/models"
	"github.com/yigit/studentrecords/internal/app/models/dto"
	"github.com/yigit/studentrecords/internal/app/repositories"
	"github.com/yigit/studentrecords/internal/pkg/apperrors"
	"github.com/yigit/studentrecords/internal/pkg/helpers"
	"github.com/yigit/studentrecords/internal/pkg/validation"
)

// Form field names as submitted by the create/edit form
const (
	FieldID      = "id"
	FieldName    = "name"
	FieldEmail   = "correo"
	FieldAverage = "promedio"
	FieldProgram = "programa"
)

// StudentList is a filtered, ordered listing together with its mean average
type StudentList struct {
	Students  []*models.StudentWithProgram
	Average   float64 // NaN when Students is empty
	ProgramID *int64
	Sort      *repositories.StudentSort
}

// StudentService defines the interface for student-related operations
type StudentService interface {
	ListStudents(ctx context.Context, rawProgram, rawOrder string) (*StudentList, error)
	GetStudent(ctx context.Context, id int64) (*models.Student, error)
	ParseStudentForm(ctx context.Context, form dto.StudentForm) (*models.Student, error)
	CreateStudent(ctx context.Context, form dto.StudentForm) (*models.Student, error)
	UpdateStudent(ctx context.Context, id int64, form dto.StudentForm) (*models.Student, error)
}

type studentServiceImpl struct {
	studentRepo *repositories.StudentRepository
	programRepo *repositories.ProgramRepository
	validator   *validation.FormValidator
}

// NewStudentService creates a new student service instance
func NewStudentService(
	studentRepo *repositories.StudentRepository,
	programRepo *repositories.ProgramRepository,
	validator *validation.FormValidator,
) StudentService {
	return &studentServiceImpl{
		studentRepo: studentRepo,
		programRepo: programRepo,
		validator:   validator,
	}
}

// ParseProgramFilter turns the programa query value into a filter. Blank means no filter.
func ParseProgramFilter(raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidProgramFilter, fmt.Sprintf("program filter %q is not an integer", raw)).
			WithDetails(map[string]interface{}{"programa": raw})
	}
	return &id, nil
}

// ListStudents lists students, optionally restricted to one program and
// ordered by an allowed column, and computes the mean of their averages.
func (s *studentServiceImpl) ListStudents(ctx context.Context, rawProgram, rawOrder string) (*StudentList, error) {
	programID, err := ParseProgramFilter(rawProgram)
	if err != nil {
		return nil, err
	}
	sort, err := repositories.ParseStudentSort(rawOrder)
	if err != nil {
		return nil, err
	}

	students, err := s.studentRepo.List(ctx, repositories.StudentListFilter{ProgramID: programID, Sort: sort})
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}

	averages := make([]float64, len(students))
	for i, st := range students {
		averages[i] = st.Average
	}

	return &StudentList{
		Students:  students,
		Average:   helpers.Mean(averages),
		ProgramID: programID,
		Sort:      sort,
	}, nil
}

// GetStudent retrieves a student by ID
func (s *studentServiceImpl) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

// ParseStudentForm validates the submitted values and converts them into a
// Student. Every field problem is reported in a single ValidationErrors.
func (s *studentServiceImpl) ParseStudentForm(ctx context.Context, form dto.StudentForm) (*models.Student, error) {
	form = form.Trim()

	fieldErrs, err := s.validator.Validate(form)
	if err != nil {
		return nil, fmt.Errorf("error validating student form: %w", err)
	}
	failed := fieldErrs.ByField()

	student := &models.Student{Name: form.Name, Email: form.Email}

	if _, bad := failed[FieldID]; !bad {
		id, err := strconv.ParseInt(form.ID, 10, 64)
		if err != nil {
			fieldErrs = append(fieldErrs, apperrors.FieldError{Field: FieldID, Kind: apperrors.ErrInvalidType, Value: form.ID})
		}
		student.ID = id
	}

	if _, bad := failed[FieldAverage]; !bad {
		avg, err := strconv.ParseFloat(form.Average, 64)
		if err != nil {
			fieldErrs = append(fieldErrs, apperrors.FieldError{Field: FieldAverage, Kind: apperrors.ErrInvalidType, Value: form.Average})
		}
		student.Average = avg
	}

	if _, bad := failed[FieldProgram]; !bad {
		programID, err := strconv.ParseInt(form.ProgramID, 10, 64)
		if err != nil {
			fieldErrs = append(fieldErrs, apperrors.FieldError{Field: FieldProgram, Kind: apperrors.ErrInvalidType, Value: form.ProgramID})
		} else if _, err := s.programRepo.GetByID(ctx, programID); err != nil {
			if !errors.Is(err, apperrors.ErrProgramNotFound) {
				return nil, fmt.Errorf("error checking program: %w", err)
			}
			fieldErrs = append(fieldErrs, apperrors.FieldError{Field: FieldProgram, Kind: apperrors.ErrDanglingReference, Value: form.ProgramID})
		}
		student.ProgramID = programID
	}

	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}
	return student, nil
}

// writeError maps store failures of a create or update onto application errors
func writeError(op string, student *models.Student, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrStudentIDAlreadyExists):
		return apperrors.ErrStudentIDAlreadyExists
	case errors.Is(err, apperrors.ErrStudentNotFound):
		return apperrors.ErrStudentNotFound
	case errors.Is(err, apperrors.ErrProgramNotFound):
		// program removed between the check and the write
		return apperrors.ValidationErrors{{
			Field: FieldProgram,
			Kind:  apperrors.ErrDanglingReference,
			Value: strconv.FormatInt(student.ProgramID, 10),
		}}
	default:
		return fmt.Errorf("error %s student: %w", op, err)
	}
}

// CreateStudent validates the form and inserts the student
func (s *studentServiceImpl) CreateStudent(ctx context.Context, form dto.StudentForm) (*models.Student, error) {
	student, err := s.ParseStudentForm(ctx, form)
	if err != nil {
		return nil, err
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, writeError("creating", student, err)
	}
	return student, nil
}

// UpdateStudent replaces the student stored under id with the submitted
// values. The submitted id may differ from the current one.
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, id int64, form dto.StudentForm) (*models.Student, error) {
	if _, err := s.GetStudent(ctx, id); err != nil {
		return nil, err
	}

	student, err := s.ParseStudentForm(ctx, form)
	if err != nil {
		return nil, err
	}
	if err := s.studentRepo.Update(ctx, id, student); err != nil {
		return nil, writeError("updating", student, err)
	}
	return student, nil
}
