package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSConfig holds configuration for cross-origin request handling.
type CORSConfig struct {
	// AllowedOrigins is the list of origins allowed to call the API.
	// Empty means same-origin only; no CORS headers are emitted.
	AllowedOrigins []string
}

// CORS returns middleware that emits CORS headers for allowed origins and
// answers preflight requests. Requests from other origins pass through
// without CORS headers, which browsers then block.
func CORS(config CORSConfig) gin.HandlerFunc {
	// Build a set of allowed origins for O(1) lookup
	allowedSet := make(map[string]bool)
	for _, origin := range config.AllowedOrigins {
		// Normalize: remove trailing slash, lowercase
		normalized := strings.TrimSuffix(strings.ToLower(origin), "/")
		allowedSet[normalized] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && isAllowedOrigin(origin, allowedSet) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type,Authorization")
			c.Header("Access-Control-Max-Age", "600")
			c.Header("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// isAllowedOrigin checks if the given origin is in the allowed set.
func isAllowedOrigin(origin string, allowedSet map[string]bool) bool {
	normalized := strings.TrimSuffix(strings.ToLower(origin), "/")
	return allowedSet[normalized]
}
