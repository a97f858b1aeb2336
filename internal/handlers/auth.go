package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio/api/internal/middleware"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_body"})
		return
	}

	if !h.auth.VerifyCredentials(c.Request.Context(), req.Email, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	token, err := h.auth.IssueSession(req.Email)
	if err != nil {
		h.log.Error().Err(err).Msg("issue session failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login_failed"})
		return
	}

	h.setSessionCookie(c, token, int(h.cfg.Session.TTL.Seconds()))
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Logout overwrites the session cookie with an empty, expired value. The
// token itself stays stateless; nothing needs revoking server-side.
func (h HandlerSet) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Session reports the identity behind a valid session cookie. The guard has
// already rejected everything else.
func (h HandlerSet) Session(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"email": identity.Email})
}

func (h HandlerSet) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	secure := h.cfg.Environment == "production"
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", secure, true)
}
