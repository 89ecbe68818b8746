package handler

import (
	"errors"
	"net/http"

	"github.com/adrianmtzc/campusmatch-backend/internal/domain"
	"github.com/gin-gonic/gin"
)

// ErrorResponse represents error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// respondError maps a domain error to its HTTP status. Unknown errors become
// an opaque 500; the real cause goes to the log, not the client.
func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), ErrorResponse{Error: publicMessage(err)})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrMatchNotFound),
		errors.Is(err, domain.ErrMessageNotFound),
		errors.Is(err, domain.ErrEventNotFound),
		errors.Is(err, domain.ErrGroupNotFound):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized

	case errors.Is(err, domain.ErrNotParticipant),
		errors.Is(err, domain.ErrNotReceiver),
		errors.Is(err, domain.ErrNotCreator),
		errors.Is(err, domain.ErrEmailNotVerified),
		errors.Is(err, domain.ErrNotEligible):
		return http.StatusForbidden

	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidDateRange),
		errors.Is(err, domain.ErrCannotMatchSelf),
		errors.Is(err, domain.ErrEmptyMessageContent),
		errors.Is(err, domain.ErrNotInvitation):
		return http.StatusBadRequest

	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrMatchAlreadyExists),
		errors.Is(err, domain.ErrConcurrentUpdate),
		errors.Is(err, domain.ErrMatchNotActive),
		errors.Is(err, domain.ErrEventFull),
		errors.Is(err, domain.ErrEventNotActive),
		errors.Is(err, domain.ErrGroupFull),
		errors.Is(err, domain.ErrGroupNotActive),
		errors.Is(err, domain.ErrAlreadyMember),
		errors.Is(err, domain.ErrNotMember):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func publicMessage(err error) string {
	if statusFor(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}
