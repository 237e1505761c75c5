package middleware

import (
	"errors"
	"net/http"

	"intervyo-backend/internal/delivery/http/response"
	"intervyo-backend/internal/domain"
	"intervyo-backend/pkg/apperror"
	"intervyo-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error pushed with c.Error as the response envelope
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Err != nil {
				logger.Log.Error("Request failed",
					"status", appErr.Code,
					"path", c.FullPath(),
					"request_id", c.GetString(string(domain.KeyRequestID)),
					"error", appErr.Err,
				)
			}
			response.Error(c, appErr.Code, appErr.Message, nil)
			return
		}

		// Internal details stay in the server log
		logger.Log.Error("Internal server error",
			"path", c.FullPath(),
			"request_id", c.GetString(string(domain.KeyRequestID)),
			"error", err,
		)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
