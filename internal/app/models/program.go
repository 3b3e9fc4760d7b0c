package models

// Program represents an academic program offered at a campus
type Program struct {
	ID     int64  `json:"id" db:"id"`
	Name   string `json:"name" db:"name"`
	Campus string `json:"campus" db:"campus"`
}
