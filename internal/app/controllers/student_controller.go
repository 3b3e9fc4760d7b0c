package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yigit/studentrecords/internal/app/models/dto"
	"github.com/yigit/studentrecords/internal/app/services"
	"github.com/yigit/studentrecords/internal/app/views"
	"github.com/yigit/studentrecords/internal/middleware"
	"github.com/yigit/studentrecords/internal/pkg/apperrors"
)

const studentListPath = "/estudiantes"

// StudentController handles the student pages
type StudentController struct {
	studentService services.StudentService
	programService services.ProgramService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService, programService services.ProgramService) *StudentController {
	return &StudentController{
		studentService: studentService,
		programService: programService,
	}
}

// Index redirects to the student listing
// GET /
func (c *StudentController) Index(ctx *gin.Context) {
	ctx.Redirect(http.StatusFound, studentListPath)
}

// List renders the students, optionally filtered by program and ordered
// GET /estudiantes?programa=<id>&order=<column [ASC|DESC]>
func (c *StudentController) List(ctx *gin.Context) {
	program := ctx.Query("programa")
	order := ctx.Query("order")

	list, err := c.studentService.ListStudents(ctx, program, order)
	if err != nil {
		middleware.HandleHTMLError(ctx, err)
		return
	}

	programs, err := c.programService.ListPrograms(ctx)
	if err != nil {
		middleware.HandleHTMLError(ctx, err)
		return
	}

	ctx.HTML(http.StatusOK, views.StudentList, dto.StudentListView{
		Students: list.Students,
		Average:  list.Average,
		Program:  program,
		Order:    order,
		Programs: programs,
	})
}

// NewForm renders an empty creation form
// GET /crear_estudiante
func (c *StudentController) NewForm(ctx *gin.Context) {
	c.renderForm(ctx, http.StatusOK, dto.StudentFormView{
		Title:  "Crear estudiante",
		Action: "/crear_estudiante",
	})
}

// Create stores a new student and redirects to the listing
// POST /crear_estudiante
func (c *StudentController) Create(ctx *gin.Context) {
	var form dto.StudentForm
	if err := ctx.ShouldBind(&form); err != nil {
		middleware.HandleHTMLError(ctx, apperrors.NewCustomError(apperrors.ErrBadRequest, err.Error()))
		return
	}

	if _, err := c.studentService.CreateStudent(ctx, form); err != nil {
		c.handleFormError(ctx, err, dto.StudentFormView{
			Title:   "Crear estudiante",
			Action:  "/crear_estudiante",
			Student: form,
		})
		return
	}

	ctx.Redirect(http.StatusFound, studentListPath)
}

// EditForm renders the form prefilled with a stored student
// GET /estudiante/:id
func (c *StudentController) EditForm(ctx *gin.Context) {
	id, err := parseStudentID(ctx)
	if err != nil {
		middleware.HandleHTMLError(ctx, err)
		return
	}

	student, err := c.studentService.GetStudent(ctx, id)
	if err != nil {
		middleware.HandleHTMLError(ctx, err)
		return
	}

	c.renderForm(ctx, http.StatusOK, dto.StudentFormView{
		Title:   "Editar estudiante",
		Action:  editPath(id),
		Student: dto.StudentFormFromModel(student),
	})
}

// Update replaces a stored student and redirects to the listing
// POST /estudiante/:id
func (c *StudentController) Update(ctx *gin.Context) {
	id, err := parseStudentID(ctx)
	if err != nil {
		middleware.HandleHTMLError(ctx, err)
		return
	}

	var form dto.StudentForm
	if err := ctx.ShouldBind(&form); err != nil {
		middleware.HandleHTMLError(ctx, apperrors.NewCustomError(apperrors.ErrBadRequest, err.Error()))
		return
	}

	if _, err := c.studentService.UpdateStudent(ctx, id, form); err != nil {
		c.handleFormError(ctx, err, dto.StudentFormView{
			Title:   "Editar estudiante",
			Action:  editPath(id),
			Student: form,
		})
		return
	}

	ctx.Redirect(http.StatusFound, studentListPath)
}

// handleFormError re-renders the form for validation and conflict errors and
// falls back to the error page for everything else
func (c *StudentController) handleFormError(ctx *gin.Context, err error, view dto.StudentFormView) {
	var ve apperrors.ValidationErrors
	switch {
	case errors.As(err, &ve):
		view.Errors = middleware.ValidationMessages(ve)
		view.Message = "Revise los campos marcados"
		c.renderForm(ctx, http.StatusBadRequest, view)
	case errors.Is(err, apperrors.ErrStudentIDAlreadyExists):
		view.Errors = map[string]string{services.FieldID: "Ya existe un estudiante con ese ID"}
		view.Message = "Ya existe un estudiante con ese ID"
		c.renderForm(ctx, http.StatusConflict, view)
	default:
		middleware.HandleHTMLError(ctx, err)
	}
}

func (c *StudentController) renderForm(ctx *gin.Context, status int, view dto.StudentFormView) {
	programs, err := c.programService.ListPrograms(ctx)
	if err != nil {
		middleware.HandleHTMLError(ctx, err)
		return
	}
	view.Programs = programs
	ctx.HTML(status, views.StudentForm, view)
}

func parseStudentID(ctx *gin.Context) (int64, error) {
	raw := ctx.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperrors.NewCustomError(apperrors.ErrInvalidStudentID, fmt.Sprintf("invalid student ID %q", raw))
	}
	return id, nil
}

func editPath(id int64) string {
	return "/estudiante/" + strconv.FormatInt(id, 10)
}
