package errors

import (
	"fmt"
	"net/http"
)

// APIError represents a custom error type for API responses
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Details string `json:"details,omitempty"`
}

// Error returns the error message
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAPIError(code, message string, status int, details ...string) *APIError {
	err := &APIError{
		Code:    code,
		Message: message,
		Status:  status,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

var (
	ErrInvalidInput = NewAPIError("INVALID_INPUT", "Invalid request data", http.StatusBadRequest)
	ErrNotFound     = NewAPIError("NOT_FOUND", "Resource not found", http.StatusNotFound)
	ErrInternal     = NewAPIError("INTERNAL_SERVER_ERROR", "Internal server error", http.StatusInternalServerError)
	ErrUnavailable  = NewAPIError("UNAVAILABLE", "Points of interest are still loading", http.StatusServiceUnavailable)
)

// Wrap returns err unchanged when it is already an APIError, otherwise a new
// APIError carrying err's text as details.
func Wrap(err error, code, message string, status int) *APIError {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr
	}
	return NewAPIError(code, message, status, err.Error())
}

// InvalidParam builds an INVALID_INPUT error naming the offending query parameter.
func InvalidParam(name, value string) *APIError {
	return NewAPIError(ErrInvalidInput.Code, ErrInvalidInput.Message, ErrInvalidInput.Status,
		fmt.Sprintf("invalid %s: %q", name, value))
}
