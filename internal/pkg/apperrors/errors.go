package apperrors

import (
	"errors"
	"strings"
)

// Common errors
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Student errors
var (
	ErrStudentNotFound        = NewResourceNotFoundError("student not found")
	ErrStudentIDAlreadyExists = NewConflictError("student ID already exists")
	ErrInvalidStudentID       = NewBadRequestError("invalid student ID format")
)

// Program errors
var (
	ErrProgramNotFound      = NewResourceNotFoundError("program not found")
	ErrInvalidProgramFilter = NewBadRequestError("program filter must be an integer")
)

// ErrInvalidSortOrder is returned for order values outside the allowed columns
var ErrInvalidSortOrder = NewBadRequestError("unsupported sort order")

// Field error kinds produced while parsing a submitted form
var (
	ErrMissingField      = errors.New("missing field")
	ErrInvalidType       = errors.New("invalid type")
	ErrDanglingReference = errors.New("referenced record does not exist")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}

// Is returns whether err matches target or any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}
	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{Err: err, Message: message}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// FieldError ties one submitted form field to the kind of problem found in it
type FieldError struct {
	Field string
	Kind  error
	Value string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Kind.Error()
}

func (e FieldError) Unwrap() error {
	return e.Kind
}

// ValidationErrors collects every field problem of a single submission.
// It matches ErrValidationFailed and each contained kind with errors.Is.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fe.Error()
	}
	return ErrValidationFailed.Error() + ": " + strings.Join(parts, "; ")
}

func (v ValidationErrors) Unwrap() []error {
	out := make([]error, 0, len(v)+1)
	out = append(out, ErrValidationFailed)
	for _, fe := range v {
		out = append(out, fe)
	}
	return out
}

// ByField returns the field errors keyed by form field name, first error wins
func (v ValidationErrors) ByField() map[string]FieldError {
	out := make(map[string]FieldError, len(v))
	for _, fe := range v {
		if _, ok := out[fe.Field]; !ok {
			out[fe.Field] = fe
		}
	}
	return out
}
