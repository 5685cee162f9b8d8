// Package handlers exposes the planner services over gin. Handlers parse
// boundary input, resolve the authenticated owner from the request context,
// and translate service errors to HTTP statuses.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"study-planner/backend/internal/models"
)

// currentUserID pulls the authenticated owner id set by the auth middleware.
// It writes the error response itself and reports ok=false when absent.
func currentUserID(c *gin.Context) (int, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return 0, false
	}
	userID, ok := userIDVal.(int)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID type in context"})
		return 0, false
	}
	return userID, true
}

// pathID parses the :id path parameter. It writes the error response itself
// and reports ok=false on malformed input.
func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return 0, false
	}
	return id, true
}

// writeServiceError maps a service error to its HTTP status. notFound is the
// sentinel for the entity handled by the caller; the message never reveals
// whether the record exists under another owner.
func writeServiceError(c *gin.Context, err error, notFound error, notFoundMsg string) {
	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message, "field": validationErr.Field})
	case errors.Is(err, notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
