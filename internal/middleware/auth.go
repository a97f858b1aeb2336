package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio/api/internal/service"
)

// SessionCookie is the name of the admin session cookie.
const SessionCookie = "admin_session"

const identityKey = "admin_identity"

// AdminAuth is the single authorization choke point. Every privileged
// route group mounts it; no handler checks sessions on its own. All
// failures, whatever the cause, abort with the same unauthorized payload.
func AdminAuth(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			abortUnauthorized(c)
			return
		}

		identity := auth.Authorize(c.Request.Context(), token)
		if identity == nil {
			abortUnauthorized(c)
			return
		}

		c.Set(identityKey, *identity)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}

// IdentityFrom returns the verified admin identity set by AdminAuth.
func IdentityFrom(c *gin.Context) (service.Identity, bool) {
	val, ok := c.Get(identityKey)
	if !ok {
		return service.Identity{}, false
	}
	identity, ok := val.(service.Identity)
	return identity, ok
}
