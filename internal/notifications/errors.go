package notifications

import (
	"errors"
	"net/http"
)

// Domain errors for notification operations.
var (
	ErrNotFound  = errors.New("notification not found")
	ErrDuplicate = errors.New("notification already exists")
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
