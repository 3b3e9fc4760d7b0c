package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/studentrecords/internal/app/models"
	"github.com/yigit/studentrecords/internal/app/repositories"
	"github.com/yigit/studentrecords/internal/pkg/apperrors"
)

// ProgramService defines the interface for program-related operations
type ProgramService interface {
	ListPrograms(ctx context.Context) ([]*models.Program, error)
	GetProgram(ctx context.Context, id int64) (*models.Program, error)
}

type programServiceImpl struct {
	programRepo *repositories.ProgramRepository
}

// NewProgramService creates a new program service instance
func NewProgramService(programRepo *repositories.ProgramRepository) ProgramService {
	return &programServiceImpl{programRepo: programRepo}
}

// ListPrograms retrieves all programs
func (s *programServiceImpl) ListPrograms(ctx context.Context) ([]*models.Program, error) {
	programs, err := s.programRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving programs: %w", err)
	}
	return programs, nil
}

// GetProgram retrieves a program by ID
func (s *programServiceImpl) GetProgram(ctx context.Context, id int64) (*models.Program, error) {
	program, err := s.programRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrProgramNotFound) {
			return nil, apperrors.ErrProgramNotFound
		}
		return nil, fmt.Errorf("error retrieving program: %w", err)
	}
	return program, nil
}
