package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var devOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

// CORSMiddleware allows the frontend and any configured extra origins.
// Localhost origins are only accepted outside production.
func CORSMiddleware(frontendURL string, extraOrigins []string, production bool) gin.HandlerFunc {
	origins := make([]string, 0, len(extraOrigins)+len(devOrigins)+1)
	seen := map[string]bool{}
	add := func(o string) {
		if o != "" && !seen[o] {
			seen[o] = true
			origins = append(origins, o)
		}
	}

	add(frontendURL)
	for _, o := range extraOrigins {
		add(o)
	}
	if !production {
		for _, o := range devOrigins {
			add(o)
		}
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader, CSRFTokenHeaderName, "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{RequestIDHeader, "Content-Disposition", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	})
}
