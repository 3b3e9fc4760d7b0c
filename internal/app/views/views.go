package views

import (
	"embed"
	"html/template"
	"strconv"
)

// Page template names accepted by gin's c.HTML
const (
	StudentList = "student_list.tmpl"
	StudentForm = "student_form.tmpl"
	ProgramList = "program_list.tmpl"
	Queries     = "consultas.tmpl"
	ErrorPage   = "error.tmpl"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// FuncMap holds the helpers available inside every template
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"mean":     FormatMean,
		"selected": Selected,
	}
}

// Load parses the embedded page templates
func Load() (*template.Template, error) {
	return template.New("").Funcs(FuncMap()).ParseFS(templateFS, "templates/*.tmpl")
}

// FormatMean renders an average with two decimals. NaN is printed as "NaN".
func FormatMean(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Selected reports whether a program option matches the submitted form value
func Selected(id int64, raw string) bool {
	return raw != "" && strconv.FormatInt(id, 10) == raw
}
