package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (h HandlerSet) GetSettings(c *gin.Context) {
	settings, err := h.settings.Get(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("load settings failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "settings_failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"heroRoles": settings.HeroRoles})
}

type updateSettingsRequest struct {
	HeroRoles *[]string `json:"heroRoles"`
}

const (
	maxHeroRoles   = 20
	maxHeroRoleLen = 80
)

func (h HandlerSet) UpdateSettings(c *gin.Context) {
	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_body"})
		return
	}

	if req.HeroRoles == nil {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	if len(*req.HeroRoles) > maxHeroRoles {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_body"})
		return
	}

	heroRoles := make([]string, 0, len(*req.HeroRoles))
	for _, role := range *req.HeroRoles {
		role = strings.TrimSpace(role)
		if role == "" {
			continue
		}
		if len(role) > maxHeroRoleLen {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_body"})
			return
		}
		heroRoles = append(heroRoles, role)
	}

	if err := h.settings.UpsertHeroRoles(c.Request.Context(), heroRoles); err != nil {
		h.respondStoreError(c, err, "update settings failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
