package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arloliu/seating"
)

// StatusOf maps an engine error to an HTTP status code.
//
// Missing records are 404 even though the engine classifies them as conflicts.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, seating.ErrTableNotFound),
		errors.Is(err, seating.ErrParticipantNotFound),
		errors.Is(err, seating.ErrPartitionNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}

	switch seating.ClassOf(err) {
	case seating.ClassInvalid:
		return http.StatusBadRequest
	case seating.ClassConflict, seating.ClassStructural:
		return http.StatusConflict
	case seating.ClassPrecondition, seating.ClassCapacity:
		return http.StatusUnprocessableEntity
	case seating.ClassTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status := StatusOf(err)
	body := gin.H{"error": err.Error(), "class": seating.ClassOf(err).String()}

	var blocked *seating.ResizeBlockedError
	if errors.As(err, &blocked) {
		body["blocking"] = blocked.Blocking
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
	}

	c.JSON(status, body)
}
