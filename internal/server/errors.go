package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/UnknownOlympus/athena/internal/lib/apperr"
	"github.com/UnknownOlympus/athena/internal/lib/logger/sl"
)

// MsgServerError is shown for every failure that is not the caller's fault.
const MsgServerError = "Server error, please try again later"

// statusOf maps an error to its HTTP status.
func statusOf(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation), errors.Is(err, apperr.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as a `{message}` response and stops the handler chain.
// Unclassified errors are logged and hidden behind a generic message.
func (a *API) fail(c *gin.Context, opn string, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		a.log.ErrorContext(c.Request.Context(), "Request failed", sl.Op(opn), sl.Err(err))
	}

	c.AbortWithStatusJSON(status, gin.H{"message": apperr.MessageOf(err, MsgServerError)})
}
