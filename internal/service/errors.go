package service

import (
	"errors"
	"fmt"
)

// Error taxonomy codes surfaced in the API error envelope
const (
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeBadRequest      = "BAD_REQUEST"
	CodeConflict        = "CONFLICT"
	CodeValidationError = "VALIDATION_ERROR"
	CodeServerError     = "SERVER_ERROR"
)

// Error is a domain error carrying a taxonomy code. Handlers map the code to
// an HTTP status and return it verbatim in the error envelope.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError creates a typed domain error
func NewError(code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ErrNotFound creates a NOT_FOUND error for a named entity
func ErrNotFound(entity string, id int64) *Error {
	return NewError(CodeNotFound, "%s not found: %d", entity, id)
}

// AsDomainError unwraps err to a typed domain error, if it carries one
func AsDomainError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
