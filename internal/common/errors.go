package common

import (
	"errors"
	"net/http"
)

// Domain error taxonomy. Services return these (usually wrapped with %w) and
// handlers translate them into the response envelope exactly once.
var (
	ErrNotFound             = errors.New("not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrConflict             = errors.New("conflict")
	ErrValidation           = errors.New("validation failed")
	ErrInvalidTransition    = errors.New("invalid state transition")
	ErrNoActiveOrganization = errors.New("no active organization")
	ErrNothingUpdated       = errors.New("no rows affected")
	ErrAlreadyConfirmed     = errors.New("email already confirmed")
)

// StatusOf maps a domain error to its HTTP-equivalent status code.
// Unknown errors are treated as internal failures.
func StatusOf(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidTransition):
		return http.StatusMethodNotAllowed
	case errors.Is(err, ErrNoActiveOrganization):
		return http.StatusMethodNotAllowed
	case errors.Is(err, ErrNothingUpdated):
		return http.StatusBadRequest
	case errors.Is(err, ErrAlreadyConfirmed):
		return http.StatusAlreadyReported
	default:
		return http.StatusInternalServerError
	}
}
