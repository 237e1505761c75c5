package v1

import (
	"strings"

	"intervyo-backend/internal/domain"
	"intervyo-backend/pkg/apperror"
	"intervyo-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

// currentUserID returns the authenticated caller or records Unauthorized on c
func currentUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(string(domain.KeyUserID))
	if userID == "" {
		c.Error(apperror.Unauthorized("User not authenticated"))
		return "", false
	}
	return userID, true
}

// bindJSON decodes and validates the body, recording a BadRequest on failure
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.Error(apperror.BadRequest(strings.Join(validation.FormatValidationErrors(err), "; ")))
		return false
	}
	return true
}

// bindQuery decodes and validates query parameters
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.Error(apperror.BadRequest(strings.Join(validation.FormatValidationErrors(err), "; ")))
		return false
	}
	return true
}
