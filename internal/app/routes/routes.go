package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/yigit/studentrecords/internal/app/controllers"
	"github.com/yigit/studentrecords/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	studentController *controllers.StudentController,
	programController *controllers.ProgramController,
	healthController *controllers.HealthController,
) {
	router.GET("/", studentController.Index)

	// Students
	router.GET("/estudiantes", studentController.List)
	router.GET("/crear_estudiante", studentController.NewForm)
	router.POST("/crear_estudiante", studentController.Create)
	router.GET("/estudiante/:id", studentController.EditForm)
	router.POST("/estudiante/:id", studentController.Update)

	// Programs
	router.GET("/programas", programController.List)
	router.GET("/consultas", programController.Queries)

	router.GET("/healthz", healthController.Check)

	router.NoRoute(middleware.NotFound())
}
