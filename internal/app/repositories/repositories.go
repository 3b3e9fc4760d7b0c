package repositories

import (
	"github.com/jmoiron/sqlx"
)

// Repositories holds all the repository instances
type Repositories struct {
	ProgramRepository *ProgramRepository
	StudentRepository *StudentRepository
}

// NewRepositories initializes all repositories over one shared store handle
func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		ProgramRepository: NewProgramRepository(db),
		StudentRepository: NewStudentRepository(db),
	}
}
