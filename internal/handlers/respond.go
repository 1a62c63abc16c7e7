package handlers

import (
	"net/http"

	"quiz-platform/internal/apperr"

	"github.com/gin-gonic/gin"
)

// Succeeded reports whether the handler that ran on c answered without
// an error status. Event hooks consult it so that failed requests do
// not publish phantom events.
func Succeeded(c *gin.Context) bool {
	return c.Writer.Status() < http.StatusBadRequest
}

// abortWithError maps the service error taxonomy onto HTTP statuses.
func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindInvalidRequest:
		status = http.StatusBadRequest
	case apperr.KindForbidden:
		status = http.StatusForbidden
	case apperr.KindInvalidState:
		status = http.StatusConflict
	case apperr.KindUpstream:
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
