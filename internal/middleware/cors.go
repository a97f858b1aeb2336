package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	corsMethods = "GET, POST, PATCH, DELETE, OPTIONS"
	corsHeaders = "Content-Type"
	corsMaxAge  = "600"
)

// CORS admits the configured frontend origins. Credentials stay on so the
// admin session cookie travels with cross-origin requests, which is why an
// empty origin list only reflects arbitrary origins outside production;
// a production deployment without configured origins admits none.
func CORS(allowedOrigins []string, production bool) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[strings.TrimSpace(origin)] = struct{}{}
	}
	reflectAny := len(allowed) == 0 && !production

	return func(c *gin.Context) {
		header := c.Writer.Header()

		if origin := c.Request.Header.Get("Origin"); origin != "" {
			_, ok := allowed[origin]
			if reflectAny || ok {
				header.Set("Access-Control-Allow-Origin", origin)
			}
			header.Set("Vary", "Origin")
		}

		header.Set("Access-Control-Allow-Credentials", "true")
		header.Set("Access-Control-Allow-Headers", corsHeaders)
		header.Set("Access-Control-Allow-Methods", corsMethods)

		if c.Request.Method == http.MethodOptions {
			header.Set("Access-Control-Max-Age", corsMaxAge)
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
