package handlers

import (
	"errors"
	"net/http"

	"github.com/easyworldradio/workspace7/internal/application"
	"github.com/easyworldradio/workspace7/internal/infrastructure/records"
)

// statusFor maps the application failure taxonomy to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, application.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, application.ErrInvalidCredentials), errors.Is(err, application.ErrNotLoggedIn):
		return http.StatusUnauthorized
	case errors.Is(err, application.ErrReadOnlyView):
		return http.StatusForbidden
	case errors.Is(err, application.ErrInvalidInviteCode), errors.Is(err, records.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, application.ErrDuplicateUsername),
		errors.Is(err, application.ErrAlreadyOwner),
		errors.Is(err, application.ErrAlreadyMember),
		errors.Is(err, application.ErrCapacityExceeded):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
