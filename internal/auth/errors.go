package auth

import (
	"errors"
	"net/http"

	"github.com/efoncier/survey-lab/internal/auth/passcode"
	"github.com/efoncier/survey-lab/internal/auth/token"
	"github.com/efoncier/survey-lab/internal/registry"
)

// ErrEmailMismatch is returned when the supplied email is absent from
// or differs from the registry record.
var ErrEmailMismatch = errors.New("email does not match registry record")

// MapHTTPStatus translates authentication errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, registry.ErrInvalidNPI),
		errors.Is(err, ErrEmailMismatch):
		return http.StatusBadRequest
	case errors.Is(err, registry.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, passcode.ErrNotFound),
		errors.Is(err, passcode.ErrMismatch),
		errors.Is(err, token.ErrTokenInvalid),
		errors.Is(err, token.ErrTokenExpired):
		return http.StatusUnauthorized
	case errors.Is(err, passcode.ErrTooManyAttempts):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
