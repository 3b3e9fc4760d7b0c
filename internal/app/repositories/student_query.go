package repositories

import (
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/studentrecords/internal/pkg/apperrors"
)

// SortColumn is one of the columns a student listing may be ordered by
type SortColumn string

const (
	SortByID      SortColumn = "id"
	SortByName    SortColumn = "name"
	SortByEmail   SortColumn = "email"
	SortByAverage SortColumn = "average"
	SortByProgram SortColumn = "program"
)

// sortExpressions is the only source of ORDER BY text
var sortExpressions = map[SortColumn]string{
	SortByID:      "students.id",
	SortByName:    "students.name",
	SortByEmail:   "students.email",
	SortByAverage: "students.average",
	SortByProgram: "programs.name",
}

// sortAliases maps accepted order keys, English and Spanish, onto columns
var sortAliases = map[string]SortColumn{
	"id":       SortByID,
	"name":     SortByName,
	"nombre":   SortByName,
	"email":    SortByEmail,
	"correo":   SortByEmail,
	"average":  SortByAverage,
	"promedio": SortByAverage,
	"program":  SortByProgram,
	"programa": SortByProgram,
}

// StudentSort is a validated ordering for the student listing
type StudentSort struct {
	Column SortColumn
	Desc   bool
}

// ParseStudentSort translates a raw order value such as "promedio DESC" or
// "-nombre" into a StudentSort. An empty value means no ordering.
func ParseStudentSort(raw string) (*StudentSort, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return nil, nil
	}

	sort := &StudentSort{}
	if strings.HasPrefix(value, "-") {
		sort.Desc = true
		value = strings.TrimPrefix(value, "-")
	}

	fields := strings.Fields(value)
	switch {
	case len(fields) == 1:
	case len(fields) == 2 && !sort.Desc && (fields[1] == "asc" || fields[1] == "desc"):
		sort.Desc = fields[1] == "desc"
	default:
		return nil, invalidSort(raw)
	}

	column, ok := sortAliases[fields[0]]
	if !ok {
		return nil, invalidSort(raw)
	}
	sort.Column = column
	return sort, nil
}

func invalidSort(raw string) error {
	return apperrors.NewCustomError(apperrors.ErrInvalidSortOrder, fmt.Sprintf("unsupported sort order %q", raw)).
		WithDetails(map[string]interface{}{"order": raw})
}

// String renders the sort in the canonical "column direction" form
func (s StudentSort) String() string {
	if s.Desc {
		return string(s.Column) + " DESC"
	}
	return string(s.Column) + " ASC"
}

func (s StudentSort) clause() (string, error) {
	expr, ok := sortExpressions[s.Column]
	if !ok {
		return "", apperrors.ErrInvalidSortOrder
	}
	if s.Desc {
		return expr + " DESC", nil
	}
	return expr + " ASC", nil
}

// StudentListFilter holds the optional restrictions of a student listing
type StudentListFilter struct {
	ProgramID *int64
	Sort      *StudentSort
}

// BuildStudentListQuery assembles the student listing statement and its bound arguments
func BuildStudentListQuery(sb squirrel.StatementBuilderType, filter StudentListFilter) (string, []interface{}, error) {
	q := sb.Select(
		"students.id",
		"students.name",
		"students.email",
		"students.average",
		"students.program_id",
		"programs.name AS program_name",
	).
		From("students").
		InnerJoin("programs ON programs.id = students.program_id")

	if filter.ProgramID != nil {
		q = q.Where(squirrel.Eq{"students.program_id": *filter.ProgramID})
	}

	if filter.Sort != nil {
		clause, err := filter.Sort.clause()
		if err != nil {
			return "", nil, err
		}
		q = q.OrderBy(clause, "students.id ASC")
	}

	return q.ToSql()
}
