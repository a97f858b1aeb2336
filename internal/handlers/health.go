package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health reports per-dependency status. The database is the one hard
// dependency; redis outages degrade caching but the site keeps serving,
// so they do not fail the check.
func (h HandlerSet) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	database := "ok"
	if err := h.db.Ping(ctx); err != nil {
		h.log.Error().Err(err).Msg("health: postgres ping failed")
		database = "error"
		status = http.StatusServiceUnavailable
	}

	cacheStatus := "ok"
	if err := h.redis.Ping(ctx).Err(); err != nil {
		h.log.Warn().Err(err).Msg("health: redis ping failed")
		cacheStatus = "degraded"
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "unavailable"
	}

	c.JSON(status, gin.H{
		"status":      overall,
		"database":    database,
		"cache":       cacheStatus,
		"environment": h.cfg.Environment,
	})
}
