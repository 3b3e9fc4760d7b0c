package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/yigit/studentrecords/internal/app/models/dto"
	"github.com/yigit/studentrecords/internal/app/views"
	"github.com/yigit/studentrecords/internal/pkg/apperrors"
)

// ErrorStatus resolves the HTTP status, error code and user-facing message for err
func ErrorStatus(err error) (int, dto.ErrorCode, string) {
	switch {
	case apperrors.Is(err, apperrors.ErrStudentNotFound):
		return http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Estudiante no encontrado"
	case apperrors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Recurso no encontrado"
	case apperrors.Is(err, apperrors.ErrInvalidSortOrder):
		return http.StatusBadRequest, dto.ErrorCodeBadRequest, "Orden no soportado"
	case apperrors.Is(err, apperrors.ErrInvalidProgramFilter):
		return http.StatusBadRequest, dto.ErrorCodeBadRequest, "El programa debe ser un número entero"
	case apperrors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Datos inválidos"
	case apperrors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.ErrorCodeBadRequest, "Solicitud inválida"
	case apperrors.Is(err, apperrors.ErrStudentIDAlreadyExists):
		return http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Ya existe un estudiante con ese ID"
	case apperrors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Conflicto"
	default:
		return http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Error interno del servidor"
	}
}

// HandleHTMLError renders the error page for err with the matching status
func HandleHTMLError(c *gin.Context, err error) {
	status, code, message := ErrorStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Str("requestID", GetRequestID(c)).
			Msg("Unhandled error while serving request")
	}
	_ = c.Error(err)
	c.HTML(status, views.ErrorPage, dto.ErrorView{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: GetRequestID(c),
	})
	c.Abort()
}

// NotFound renders the error page for unknown routes
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		HandleHTMLError(c, apperrors.ErrResourceNotFound)
	}
}
