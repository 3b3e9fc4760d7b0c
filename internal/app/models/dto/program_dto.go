package dto

import "github.com/yigit/studentrecords/internal/app/models"

// ProgramListView is the data handed to the program list template
type ProgramListView struct {
	Programs []*models.Program
}

// SortOption is one entry of the order selector on the queries page
type SortOption struct {
	Value string
	Label string
}

// QueriesView is the data handed to the static queries page
type QueriesView struct {
	Programs    []*models.Program
	SortOptions []SortOption
}
