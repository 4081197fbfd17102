package utils

import (
	"github.com/gin-gonic/gin"

	"talentika/internal/shared/errors"
	"talentika/internal/shared/id"
)

// ParseUUIDParam reads a UUID path parameter, returning a validation error when it is
// missing or malformed.
func ParseUUIDParam(c *gin.Context, paramName, entityName string) (string, error) {
	raw := c.Param(paramName)
	if raw == "" {
		return "", errors.NewValidationError(entityName + " ID is required")
	}
	if !id.IsValid(raw) {
		return "", errors.NewValidationError("invalid " + entityName + " ID format")
	}
	return raw, nil
}
