package pages

import (
	"errors"
	"net/http"
)

// Domain errors for page operations.
var (
	ErrNotFound  = errors.New("page not found")
	ErrDuplicate = errors.New("page sequence already exists for document")
)

// MapHTTPStatus converts domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
