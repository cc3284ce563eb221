package shared

import "errors"

// Error codes carried by DomainError
const (
	CodeValidation  = "VALIDATION_ERROR"
	CodeInvalidType = "INVALID_TYPE"
	CodeNotFound    = "NOT_FOUND"
)

// DomainError is an expected failure whose message is safe to show to API
// clients. Two DomainErrors match under errors.Is when their codes agree.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string { return e.Message }

func (e *DomainError) Is(target error) bool {
	var other *DomainError
	return errors.As(target, &other) && other.Code == e.Code
}

func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// NewValidationError reports a broken invariant, e.g. a negative price
func NewValidationError(message string) *DomainError {
	return &DomainError{Code: CodeValidation, Message: message}
}

// NewTypeError reports a value of the wrong kind, e.g. a non-numeric quantity
func NewTypeError(message string) *DomainError {
	return &DomainError{Code: CodeInvalidType, Message: message}
}

// Sentinels for errors.Is. ErrValidation matches every validation error.
var (
	ErrNotFound   = NewDomainError(CodeNotFound, "Resource not found")
	ErrValidation = NewDomainError(CodeValidation, "Validation failed")
)
