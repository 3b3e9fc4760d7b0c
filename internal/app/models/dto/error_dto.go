package dto

// ErrorCode represents standardized error codes
type ErrorCode string

const (
	ErrorCodeResourceNotFound      ErrorCode = "RES_001"
	ErrorCodeResourceAlreadyExists ErrorCode = "RES_002"
	ErrorCodeValidationFailed      ErrorCode = "VAL_001"
	ErrorCodeBadRequest            ErrorCode = "VAL_002"
	ErrorCodeInternalServer        ErrorCode = "SRV_001"
)

// ErrorView is the data handed to the error template
type ErrorView struct {
	Status    int
	Code      ErrorCode
	Message   string
	RequestID string
}
