package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"agrofusion-api/pkg/models"
	"agrofusion-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// statusFor maps a service error onto an HTTP status.
func statusFor(err error) int {
	if errors.Is(err, services.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// respondError writes the {"error": "..."} payload used by every endpoint.
func respondError(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		log.Printf("❌ [%s] %s %s: %v", c.GetString("request_id"), c.Request.Method, c.Request.URL.Path, err)
	}
	c.AbortWithStatusJSON(status, models.ErrorResponse{Error: err.Error()})
}

// RecoveryHandler converts a panic inside a handler into the standard error
// payload instead of a bare 500.
func RecoveryHandler(c *gin.Context, recovered interface{}) {
	respondError(c, http.StatusInternalServerError, fmt.Errorf("internal error: %v", recovered))
}
