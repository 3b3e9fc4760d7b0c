package dto

import (
	"strconv"
	"strings"

	"github.com/yigit/studentrecords/internal/app/models"
)

// StudentForm carries the raw create/edit form values before parsing
type StudentForm struct {
	ID        string `form:"id" validate:"required,number"`
	Name      string `form:"name" validate:"required"`
	Email     string `form:"correo" validate:"required"`
	Average   string `form:"promedio" validate:"required,numeric"`
	ProgramID string `form:"programa" validate:"required,number"`
}

// Trim removes surrounding whitespace from every field
func (f StudentForm) Trim() StudentForm {
	return StudentForm{
		ID:        strings.TrimSpace(f.ID),
		Name:      strings.TrimSpace(f.Name),
		Email:     strings.TrimSpace(f.Email),
		Average:   strings.TrimSpace(f.Average),
		ProgramID: strings.TrimSpace(f.ProgramID),
	}
}

// StudentFormFromModel prefills a form from a stored student
func StudentFormFromModel(s *models.Student) StudentForm {
	if s == nil {
		return StudentForm{}
	}
	return StudentForm{
		ID:        strconv.FormatInt(s.ID, 10),
		Name:      s.Name,
		Email:     s.Email,
		Average:   strconv.FormatFloat(s.Average, 'f', -1, 64),
		ProgramID: strconv.FormatInt(s.ProgramID, 10),
	}
}

// StudentFormView is the data handed to the create/edit template
type StudentFormView struct {
	Title    string
	Action   string
	Student  StudentForm
	Programs []*models.Program
	Errors   map[string]string
	Message  string
}

// StudentListView is the data handed to the student list template
type StudentListView struct {
	Students []*models.StudentWithProgram
	Average  float64
	Program  string
	Order    string
	Programs []*models.Program
}
