package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskhub/backend/internal/model"
	"github.com/taskhub/backend/internal/service"
)

// Error categories carried in the "error" field of every failure response.
const (
	categoryInvalidRequest = "invalid_request"
	categoryUnauthorized   = "unauthorized"
	categoryNotFound       = "not_found"
	categoryConflict       = "conflict"
	categoryInternal       = "internal_error"
)

func writeError(c *gin.Context, status int, category, message string) {
	c.AbortWithStatusJSON(status, model.ErrorResponse{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     category,
		Message:   message,
	})
}

// writeServiceError maps service sentinels to the wire. Bad credentials and
// bad tokens share one generic message each; duplicate registration names the
// colliding field.
func writeServiceError(c *gin.Context, err error) {
	var dup *service.DuplicateError
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeError(c, http.StatusBadRequest, categoryInvalidRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(c, http.StatusUnauthorized, categoryUnauthorized, "invalid credentials")
	case errors.Is(err, service.ErrUnauthorized):
		writeError(c, http.StatusUnauthorized, categoryUnauthorized, "invalid or expired token")
	case errors.As(err, &dup):
		writeError(c, http.StatusConflict, categoryConflict, dup.Error())
	case errors.Is(err, service.ErrConflict):
		writeError(c, http.StatusConflict, categoryConflict, "already exists")
	case errors.Is(err, service.ErrNotFound):
		writeError(c, http.StatusNotFound, categoryNotFound, "not found")
	default:
		writeError(c, http.StatusInternalServerError, categoryInternal, "server error")
	}
}
