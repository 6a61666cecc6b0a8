package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"lineup/internal/shared/errors"
)

// ParseIDParam parses a positive integer ID from a URL path parameter.
// paramName is the Gin route parameter name (e.g., "id", "counter_id").
// entityName is used in error messages (e.g., "ticket", "counter").
func ParseIDParam(c *gin.Context, paramName, entityName string) (uint, error) {
	raw := c.Param(paramName)
	if raw == "" {
		return 0, errors.NewValidationError(entityName + " ID is required")
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("invalid " + entityName + " ID, expected a positive integer")
	}

	return uint(id), nil
}
