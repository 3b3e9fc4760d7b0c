package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/studentrecords/internal/app/models/dto"
	"github.com/yigit/studentrecords/internal/app/services"
	"github.com/yigit/studentrecords/internal/app/views"
	"github.com/yigit/studentrecords/internal/middleware"
)

// QuerySortOptions are the orderings offered on the queries page
var QuerySortOptions = []dto.SortOption{
	{Value: "nombre ASC", Label: "por nombre"},
	{Value: "promedio DESC", Label: "por promedio, mayor primero"},
	{Value: "promedio ASC", Label: "por promedio, menor primero"},
	{Value: "programa ASC", Label: "por programa"},
	{Value: "id ASC", Label: "por ID"},
}

// ProgramController handles the program and queries pages
type ProgramController struct {
	programService services.ProgramService
}

// NewProgramController creates a new ProgramController
func NewProgramController(programService services.ProgramService) *ProgramController {
	return &ProgramController{programService: programService}
}

// List renders every program
// GET /programas
func (c *ProgramController) List(ctx *gin.Context) {
	programs, err := c.programService.ListPrograms(ctx)
	if err != nil {
		middleware.HandleHTMLError(ctx, err)
		return
	}
	ctx.HTML(http.StatusOK, views.ProgramList, dto.ProgramListView{Programs: programs})
}

// Queries renders the page that builds listing links per program and order
// GET /consultas
func (c *ProgramController) Queries(ctx *gin.Context) {
	programs, err := c.programService.ListPrograms(ctx)
	if err != nil {
		middleware.HandleHTMLError(ctx, err)
		return
	}
	ctx.HTML(http.StatusOK, views.Queries, dto.QueriesView{
		Programs:    programs,
		SortOptions: QuerySortOptions,
	})
}
