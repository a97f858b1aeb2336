package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio/api/internal/ids"
	"portfolio/api/internal/models"
	"portfolio/api/internal/repository"
	"portfolio/api/internal/storage"
)

func (h HandlerSet) ListPublicProjects(c *gin.Context) {
	ctx := c.Request.Context()

	if projects, ok := h.projectCache.Get(ctx); ok {
		c.JSON(http.StatusOK, gin.H{"projects": toProjectResponses(projects)})
		return
	}

	projects, err := h.projects.List(ctx, true)
	if err != nil {
		h.log.Error().Err(err).Msg("list public projects failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list_failed"})
		return
	}

	if err := h.projectCache.Set(ctx, projects); err != nil {
		h.log.Warn().Err(err).Msg("project cache store failed")
	}

	c.JSON(http.StatusOK, gin.H{"projects": toProjectResponses(projects)})
}

type engagementRequest struct {
	ProjectID string `json:"projectId" binding:"required"`
	Like      bool   `json:"like"`
	Rating    *int   `json:"rating"`
}

// ApplyEngagement is the one public write against project rows. All input
// checks happen before the store is touched; the increment itself is a
// single atomic statement in the repository.
func (h HandlerSet) ApplyEngagement(c *gin.Context) {
	var req engagementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_body"})
		return
	}

	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_rating"})
		return
	}
	if !req.Like && req.Rating == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing_to_update"})
		return
	}

	rating := 0
	if req.Rating != nil {
		rating = *req.Rating
	}

	counters, err := h.projects.ApplyEngagement(c.Request.Context(), req.ProjectID, req.Like, rating)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			return
		}
		h.log.Error().Err(err).Msg("engagement update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "engagement_failed"})
		return
	}

	h.invalidateProjectCache(c)

	c.JSON(http.StatusOK, gin.H{
		"ok": true,
		"project": gin.H{
			"id":          counters.ProjectID,
			"likesCount":  counters.LikesCount,
			"ratingCount": counters.RatingCount,
			"ratingSum":   counters.RatingSum,
			"avgRating":   counters.AvgRating(),
		},
	})
}

type contactRequest struct {
	Name    string  `json:"name" binding:"required"`
	Email   string  `json:"email" binding:"required,email"`
	Phone   *string `json:"phone"`
	Message string  `json:"message" binding:"required"`
}

func (h HandlerSet) SubmitContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_body"})
		return
	}

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	message := strings.TrimSpace(req.Message)

	if name == "" || len(name) > 80 || len(email) > 120 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_body"})
		return
	}
	if len(message) < 10 || len(message) > 2000 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_body"})
		return
	}

	var phone *string
	if req.Phone != nil {
		trimmed := strings.TrimSpace(*req.Phone)
		if len(trimmed) < 5 || len(trimmed) > 30 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_body"})
			return
		}
		phone = &trimmed
	}

	msg := models.ContactMessage{
		ID:      ids.New(),
		Name:    name,
		Email:   email,
		Phone:   phone,
		Message: message,
	}

	if err := h.messages.Insert(c.Request.Context(), msg); err != nil {
		h.respondStoreError(c, err, "contact message insert failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ResumeRedirect resolves the stored resume reference to a real location.
// Storage references get a short-lived signed URL; anything unresolvable
// falls back to the contact page rather than erroring at a visitor.
func (h HandlerSet) ResumeRedirect(c *gin.Context) {
	const fallback = "/contact"

	settings, err := h.settings.Get(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("load settings for resume failed")
		c.Redirect(http.StatusFound, fallback)
		return
	}
	if settings.ResumeURL == nil || *settings.ResumeURL == "" {
		c.Redirect(http.StatusFound, fallback)
		return
	}

	ref := *settings.ResumeURL
	bucket, key, ok := storage.ParseRef(ref)
	if !ok {
		c.Redirect(http.StatusFound, ref)
		return
	}

	if h.store == nil {
		h.log.Warn().Msg("resume points at object storage but storage is not configured")
		c.Redirect(http.StatusFound, fallback)
		return
	}

	signed, err := h.store.PresignedGetURL(c.Request.Context(), bucket, key, time.Minute)
	if err != nil {
		h.log.Error().Err(err).Msg("presign resume failed")
		c.Redirect(http.StatusFound, fallback)
		return
	}

	c.Redirect(http.StatusFound, signed)
}

func (h HandlerSet) respondStoreError(c *gin.Context, err error, msg string) {
	if errors.Is(err, repository.ErrPendingMigration) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.log.Error().Err(err).Msg(msg)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
}
