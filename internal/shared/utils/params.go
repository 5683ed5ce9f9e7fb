package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/supportdesk/internal/shared/errors"
)

// ParseIDParam reads a decimal numeric path parameter. Anything that is not a
// plain unsigned integer (signs, suffixes, blanks) is rejected with message.
func ParseIDParam(c *gin.Context, paramName, message string) (uint, error) {
	raw := c.Param(paramName)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errors.NewValidationError(message)
	}
	return uint(id), nil
}
