package apperr

import (
	"errors"
	"net/http"
)

// Sentinel errors shared by the domain packages. Handlers map them to the
// structured API error envelope; wrap with fmt.Errorf("...: %w", ErrNotFound)
// to add context.
var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrConflict        = errors.New("conflict")
	ErrValidation      = errors.New("invalid input")
	ErrCoreModule      = errors.New("core module cannot be toggled")
	ErrAlreadyMember   = errors.New("already a member")
	ErrAlreadyResolved = errors.New("request already resolved")
	ErrSelfRemoval     = errors.New("owner cannot remove themselves")
)

// Code returns the stable API error code for a domain error.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrCoreModule):
		return "CORE_MODULE"
	case errors.Is(err, ErrAlreadyMember):
		return "ALREADY_MEMBER"
	case errors.Is(err, ErrAlreadyResolved):
		return "ALREADY_RESOLVED"
	case errors.Is(err, ErrSelfRemoval):
		return "SELF_REMOVAL"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrForbidden):
		return "FORBIDDEN"
	case errors.Is(err, ErrConflict):
		return "CONFLICT"
	case errors.Is(err, ErrValidation):
		return "VALIDATION"
	default:
		return "INTERNAL"
	}
}

// Status returns the HTTP status for a domain error.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict), errors.Is(err, ErrAlreadyMember),
		errors.Is(err, ErrAlreadyResolved):
		return http.StatusConflict
	case errors.Is(err, ErrValidation), errors.Is(err, ErrCoreModule),
		errors.Is(err, ErrSelfRemoval):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
