package flight

import (
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrorCodeValidation      ErrorCode = "VALIDATION_ERROR"
	ErrorCodeUpstream        ErrorCode = "UPSTREAM_ERROR"
	ErrorCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrorCodeInternalFailure ErrorCode = "INTERNAL_FAILURE"
)

type AppError struct {
	Code    ErrorCode
	Message string
	Status  int
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(msg string) *AppError {
	return &AppError{Code: ErrorCodeValidation, Message: msg, Status: http.StatusBadRequest}
}

func NewNotFoundError(msg string) *AppError {
	return &AppError{Code: ErrorCodeNotFound, Message: msg, Status: http.StatusNotFound}
}

// statusFor maps a failed search result to its HTTP status.
func statusFor(code ErrorCode) int {
	switch code {
	case ErrorCodeValidation:
		return http.StatusBadRequest
	case ErrorCodeUpstream:
		return http.StatusBadGateway
	case ErrorCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
