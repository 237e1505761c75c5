package middleware

import (
	"context"
	"regexp"

	"intervyo-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

var requestIDPattern = regexp.MustCompile(`^[A-Za-z0-9-]{8,64}$`)

// RequestID tags every request with an id, reusing a well-formed incoming header.
// The id and client IP are also placed on the request context for usecases.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if !requestIDPattern.MatchString(id) {
			id = uuid.NewString()
		}

		c.Set(string(domain.KeyRequestID), id)
		c.Header(RequestIDHeader, id)

		ctx := context.WithValue(c.Request.Context(), domain.KeyRequestID, id)
		ctx = context.WithValue(ctx, domain.KeyClientIP, c.ClientIP())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
