package handlers

import (
	"errors"
	"net/http"

	"recruit-api/internal/logging"
	"recruit-api/internal/services"

	"github.com/gin-gonic/gin"
)

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrConflict),
		errors.Is(err, services.ErrInvalidState),
		errors.Is(err, services.ErrInvalidTransition):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// handleServiceError writes the response for err. Client errors carry the
// service message; anything else is logged and reported as "Failed to <action>".
func handleServiceError(c *gin.Context, err error, action string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).Error("request failed", "action", action, "error", err)
		respondError(c, status, "Failed to "+action, nil)
		return
	}
	respondError(c, status, err.Error(), nil)
}
