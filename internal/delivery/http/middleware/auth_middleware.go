package middleware

import (
	"context"
	"net/http"
	"strings"

	"intervyo-backend/internal/delivery/http/response"
	"intervyo-backend/internal/domain"
	"intervyo-backend/pkg/audit"
	"intervyo-backend/pkg/auth"
	"intervyo-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// TokenVerifier validates a bearer token and returns its identity claims
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// AuthMiddleware resolves the caller from the Authorization header or the token cookie
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or token cookie required", nil)
			c.Abort()
			return
		}

		claims, err := verifier.Verify(tokenString)
		if err != nil {
			logger.Log.Warn("Token validation failed", "path", c.FullPath(), "error", err)
			audit.Default().Log(c.Request.Context(), audit.Event{
				Event:       audit.EventUnauthorizedAccess,
				SubjectType: "route",
				SubjectID:   c.FullPath(),
				IP:          c.ClientIP(),
				RequestID:   c.GetString(string(domain.KeyRequestID)),
				Details:     map[string]interface{}{"reason": "invalid_token"},
			})
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), claims.UserID)
		c.Set(string(domain.KeyUserEmail), claims.Email)

		ctx := context.WithValue(c.Request.Context(), domain.KeyUserID, claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if cookie, err := c.Cookie("token"); err == nil {
		return cookie
	}
	return ""
}
