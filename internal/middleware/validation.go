package middleware

import (
	"errors"

	"github.com/yigit/studentrecords/internal/pkg/apperrors"
)

// ValidationMessages turns field errors into the per-field messages shown
// next to each input of the student form.
func ValidationMessages(ve apperrors.ValidationErrors) map[string]string {
	out := make(map[string]string, len(ve))
	for field, fe := range ve.ByField() {
		out[field] = formatValidationError(fe)
	}
	return out
}

func formatValidationError(fe apperrors.FieldError) string {
	switch {
	case errors.Is(fe.Kind, apperrors.ErrMissingField):
		return "Este campo es obligatorio"
	case errors.Is(fe.Kind, apperrors.ErrDanglingReference):
		return "El programa seleccionado no existe"
	case errors.Is(fe.Kind, apperrors.ErrInvalidType):
		if fe.Field == "promedio" {
			return "Debe ser un número"
		}
		return "Debe ser un número entero"
	default:
		return "Valor inválido"
	}
}
