package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wellnessdiary/api/internal/common"
)

// abortWithError is the single place domain errors become HTTP responses.
// Handlers return errors here instead of writing error envelopes ad hoc.
func (s *Server) abortWithError(c *gin.Context, err error) {

	var status int
	var msg string

	switch {
	case errors.Is(err, common.ErrorValidation):
		status = http.StatusBadRequest
		msg = detail(err, common.ErrorValidation, "Invalid request")
	case errors.Is(err, common.ErrorAlreadyExists):
		status = http.StatusBadRequest
		msg = detail(err, common.ErrorAlreadyExists, "Already exists")
	case errors.Is(err, common.ErrResetTokenExpired):
		status = http.StatusBadRequest
		msg = "Invalid or expired reset token"
	case errors.Is(err, common.ErrorNotFound):
		status = http.StatusNotFound
		msg = detail(err, common.ErrorNotFound, "Resource not found")
	case errors.Is(err, common.ErrorUnauthorized):
		status = http.StatusUnauthorized
		msg = "Invalid credentials"
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		status = http.StatusUnauthorized
		msg = "Not authorized to access this resource"
	case errors.Is(err, common.ErrorForbidden):
		status = http.StatusForbidden
		msg = detail(err, common.ErrorForbidden, "Forbidden")
	case errors.Is(err, common.ErrorInternal):
		status = http.StatusInternalServerError
		msg = detail(err, common.ErrorInternal, "Internal server error")
	default:
		status = http.StatusInternalServerError
		msg = "Internal server error"
	}

	if status == http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "request failed",
			"method", c.Request.Method, "path", c.FullPath(), "error", err)
	}

	c.AbortWithStatusJSON(status, response{Success: false, Message: msg})
}

// detail extracts the human part of a sentinel-wrapped error: services wrap
// as fmt.Errorf("%w: detail", sentinel), so everything after the sentinel
// text is the message. A bare sentinel falls back to the given default.
func detail(err error, sentinel error, fallback string) string {
	rest := strings.TrimPrefix(err.Error(), sentinel.Error())
	rest = strings.TrimPrefix(rest, ": ")
	if rest == "" {
		return fallback
	}
	return rest
}
