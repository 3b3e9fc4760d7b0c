package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	appModels "github.com/yigit/studentrecords/internal/app/models"
	appRepos "github.com/yigit/studentrecords/internal/app/repositories"
)

// DefaultPrograms are inserted on startup when missing
var DefaultPrograms = []appModels.Program{
	{ID: 111, Name: "Multimedia", Campus: "Calle 100"},
	{ID: 222, Name: "Mecatrónica", Campus: "Calle 100"},
	{ID: 333, Name: "Civil", Campus: "Cajicá"},
	{ID: 444, Name: "Industrial", Campus: "Cajicá"},
}

// DefaultStudents are inserted on startup when missing
var DefaultStudents = []appModels.Student{
	{ID: 1234, Name: "Andrés Botero", Email: "andres@gmail.com", Average: 34, ProgramID: 111},
	{ID: 5678, Name: "Jose Cifuentes", Email: "jose@gmail.com", Average: 37, ProgramID: 111},
	{ID: 9012, Name: "Mario Martinez", Email: "mario@gmail.com", Average: 45, ProgramID: 222},
	{ID: 3456, Name: "Dario Durán", Email: "dario@gmail.com", Average: 43, ProgramID: 222},
	{ID: 7890, Name: "Santiago Santos", Email: "santiago@gmail.com", Average: 41, ProgramID: 333},
	{ID: 1357, Name: "Pepito Perez", Email: "pepito@gmail.com", Average: 38, ProgramID: 333},
	{ID: 9135, Name: "Juanito Jordan", Email: "juanito@gmail.com", Average: 36, ProgramID: 444},
	{ID: 7913, Name: "Roberto Romero", Email: "roberto@gmail.com", Average: 34, ProgramID: 444},
}

// CreateDefaultData inserts the default programs and students that are not
// already present. Failures are logged and joined so one bad row does not stop the rest.
func CreateDefaultData(ctx context.Context, repos *appRepos.Repositories, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (Programs/Students)...")
	var finalErr error
	var programsCreated, studentsCreated int

	for i := range DefaultPrograms {
		p := DefaultPrograms[i]
		created, err := repos.ProgramRepository.CreateIfAbsent(ctx, &p)
		if err != nil {
			lgr.Error().Err(err).Int64("programID", p.ID).Msg("Error creating default program")
			finalErr = errors.Join(finalErr, fmt.Errorf("program %d: %w", p.ID, err))
			continue
		}
		if created {
			programsCreated++
		}
	}

	for i := range DefaultStudents {
		s := DefaultStudents[i]
		created, err := repos.StudentRepository.CreateIfAbsent(ctx, &s)
		if err != nil {
			lgr.Error().Err(err).Int64("studentID", s.ID).Msg("Error creating default student")
			finalErr = errors.Join(finalErr, fmt.Errorf("student %d: %w", s.ID, err))
			continue
		}
		if created {
			studentsCreated++
		}
	}

	lgr.Info().
		Int("programsCreated", programsCreated).
		Int("studentsCreated", studentsCreated).
		Msg("Default data check complete")
	return finalErr
}
