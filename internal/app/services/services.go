package services

import (
	"github.com/yigit/studentrecords/internal/app/repositories"
	"github.com/yigit/studentrecords/internal/pkg/validation"
)

// Services holds the business logic layer used by the controllers.
// - ProgramService: read access to the academic programs
// - StudentService: listing, form parsing, creation and edition of students
type Services struct {
	ProgramService ProgramService
	StudentService StudentService
}

// NewServices builds every service over the given repositories
func NewServices(repos *repositories.Repositories) *Services {
	return &Services{
		ProgramService: NewProgramService(repos.ProgramRepository),
		StudentService: NewStudentService(repos.StudentRepository, repos.ProgramRepository, validation.NewFormValidator()),
	}
}
