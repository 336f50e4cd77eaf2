package httpx

import (
	"errors"
	"net/http"
)

// Failure classes for the whole service. Stores and services wrap these with
// fmt.Errorf("...: %w", ...) and handlers map them to status codes here.
var (
	ErrBadRequest        = errors.New("bad request")
	ErrInvalidID         = errors.New("invalid identifier")
	ErrUnauthenticated   = errors.New("missing token")
	ErrInvalidToken      = errors.New("invalid token")
	ErrNotFound          = errors.New("not found")
	ErrDuplicateRequest  = errors.New("duplicate request")
	ErrCapacityExhausted = errors.New("capacity exhausted")
)

// StatusOf maps a classified error to its HTTP status. Anything unclassified
// is an internal error.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrDuplicateRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated), errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrCapacityExhausted):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
