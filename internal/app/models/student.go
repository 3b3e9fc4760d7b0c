package models

// Student defines the student model based on the 'students' table
type Student struct {
	ID        int64   `json:"id" db:"id"`
	Name      string  `json:"name" db:"name"`
	Email     string  `json:"email" db:"email"`
	Average   float64 `json:"average" db:"average"`
	ProgramID int64   `json:"programId" db:"program_id"`
}

// StudentWithProgram is a student row joined with the name of its program
type StudentWithProgram struct {
	Student
	ProgramName string `json:"programName" db:"program_name"`
}
