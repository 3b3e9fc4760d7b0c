package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yigit/studentrecords/internal/pkg/apperrors"
)

// FormValidator checks submitted form structs against their `validate` tags
// and reports problems under the `form` tag name of each field.
type FormValidator struct {
	validate *validator.Validate
}

// NewFormValidator creates a validator that names fields after their form keys
func NewFormValidator() *FormValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return &FormValidator{validate: v}
}

// Validate returns one FieldError per failing field, or nil when the form is valid.
func (f *FormValidator) Validate(form interface{}) (apperrors.ValidationErrors, error) {
	err := f.validate.Struct(form)
	if err == nil {
		return nil, nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// InvalidValidationError: the caller passed something that is not a struct
		return nil, err
	}

	out := make(apperrors.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, apperrors.FieldError{
			Field: fe.Field(),
			Kind:  KindForTag(fe.Tag()),
			Value: valueString(fe.Value()),
		})
	}
	return out, nil
}

// KindForTag maps a validator tag onto the field error kind it represents
func KindForTag(tag string) error {
	switch tag {
	case "required":
		return apperrors.ErrMissingField
	default:
		return apperrors.ErrInvalidType
	}
}

func valueString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
