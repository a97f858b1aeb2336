package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio/api/internal/ids"
	"portfolio/api/internal/models"
	"portfolio/api/internal/repository"
)

type projectResponse struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	URL                string     `json:"url"`
	Description        *string    `json:"description"`
	TechStack          []string   `json:"techStack"`
	Order              int        `json:"order"`
	IsVisible          bool       `json:"isVisible"`
	LikesCount         int        `json:"likesCount"`
	RatingCount        int        `json:"ratingCount"`
	RatingSum          int        `json:"ratingSum"`
	AvgRating          float64    `json:"avgRating"`
	PreviewImage       *string    `json:"previewImage"`
	PreviewImages      []string   `json:"previewImages"`
	PreviewTitle       *string    `json:"previewTitle"`
	PreviewDescription *string    `json:"previewDescription"`
	PreviewDomain      *string    `json:"previewDomain"`
	PreviewFetchedAt   *time.Time `json:"previewFetchedAt"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

func toProjectResponse(p models.Project) projectResponse {
	techStack := p.TechStack
	if techStack == nil {
		techStack = []string{}
	}
	previewImages := p.PreviewImages
	if previewImages == nil {
		previewImages = []string{}
	}

	return projectResponse{
		ID:                 p.ID,
		Title:              p.Title,
		URL:                p.URL,
		Description:        p.Description,
		TechStack:          techStack,
		Order:              p.Order,
		IsVisible:          p.IsVisible,
		LikesCount:         p.LikesCount,
		RatingCount:        p.RatingCount,
		RatingSum:          p.RatingSum,
		AvgRating:          p.AvgRating(),
		PreviewImage:       p.PreviewImage,
		PreviewImages:      previewImages,
		PreviewTitle:       p.PreviewTitle,
		PreviewDescription: p.PreviewDescription,
		PreviewDomain:      p.PreviewDomain,
		PreviewFetchedAt:   p.PreviewFetchedAt,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func toProjectResponses(projects []models.Project) []projectResponse {
	out := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProjectResponse(p))
	}
	return out
}

func (h HandlerSet) AdminListProjects(c *gin.Context) {
	projects, err := h.projects.List(c.Request.Context(), false)
	if err != nil {
		h.log.Error().Err(err).Msg("list projects failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list_failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": toProjectResponses(projects)})
}

type createProjectRequest struct {
	Title       string   `json:"title" binding:"required"`
	URL         string   `json:"url" binding:"required,url"`
	Description *string  `json:"description"`
	TechStack   []string `json:"techStack"`
	Order       *int     `json:"order"`
	IsVisible   *bool    `json:"isVisible"`
}

func (h HandlerSet) CreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_body"})
		return
	}

	// Preview synchronization is best-effort by construction; an external
	// outage produces an empty preview block, never a failed create.
	preview := h.preview.Synchronize(c.Request.Context(), req.URL)
	now := time.Now()

	project := models.Project{
		ID:                 ids.New(),
		Title:              req.Title,
		URL:                req.URL,
		Description:        req.Description,
		TechStack:          req.TechStack,
		IsVisible:          true,
		PreviewImage:       preview.Image,
		PreviewImages:      preview.Images,
		PreviewTitle:       preview.Title,
		PreviewDescription: preview.Description,
		PreviewDomain:      preview.Domain,
		PreviewFetchedAt:   &now,
	}
	if project.TechStack == nil {
		project.TechStack = []string{}
	}
	if req.Order != nil {
		project.Order = *req.Order
	}
	if req.IsVisible != nil {
		project.IsVisible = *req.IsVisible
	}

	if err := h.projects.Create(c.Request.Context(), project); err != nil {
		h.log.Error().Err(err).Msg("create project failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create_failed"})
		return
	}

	created, err := h.projects.GetByID(c.Request.Context(), project.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("read back created project failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create_failed"})
		return
	}

	h.invalidateProjectCache(c)
	c.JSON(http.StatusOK, gin.H{"project": toProjectResponse(created)})
}

type updateProjectRequest struct {
	ID             string   `json:"id" binding:"required"`
	Title          *string  `json:"title"`
	URL            *string  `json:"url" binding:"omitempty,url"`
	Description    *string  `json:"description"`
	TechStack      []string `json:"techStack"`
	Order          *int     `json:"order"`
	IsVisible      *bool    `json:"isVisible"`
	RefreshPreview bool     `json:"refreshPreview"`
	PreviewImages  []string `json:"previewImages"`
}

func (h HandlerSet) UpdateProject(c *gin.Context) {
	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_body"})
		return
	}

	current, err := h.projects.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			return
		}
		h.log.Error().Err(err).Msg("load project failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update_failed"})
		return
	}

	nextURL := current.URL
	if req.URL != nil {
		nextURL = *req.URL
	}
	// A manual refresh request always re-synchronizes; a URL change forces
	// one so the cached preview never describes the previous destination.
	shouldRefresh := req.RefreshPreview || (req.URL != nil && *req.URL != current.URL)

	patch := repository.ProjectPatch{
		Title:         req.Title,
		URL:           req.URL,
		Description:   req.Description,
		TechStack:     req.TechStack,
		Order:         req.Order,
		IsVisible:     req.IsVisible,
		PreviewImages: req.PreviewImages,
	}

	if shouldRefresh {
		preview := h.preview.Synchronize(c.Request.Context(), nextURL)
		patch.Preview = &repository.PreviewUpdate{
			Image:       preview.Image,
			Images:      preview.Images,
			Title:       preview.Title,
			Description: preview.Description,
			Domain:      preview.Domain,
			FetchedAt:   time.Now(),
		}
	}

	updated, err := h.projects.Update(c.Request.Context(), req.ID, patch)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			return
		}
		h.log.Error().Err(err).Msg("update project failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update_failed"})
		return
	}

	h.invalidateProjectCache(c)
	c.JSON(http.StatusOK, gin.H{"project": toProjectResponse(updated)})
}

type deleteProjectRequest struct {
	ID string `json:"id" binding:"required"`
}

func (h HandlerSet) DeleteProject(c *gin.Context) {
	var req deleteProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_body"})
		return
	}

	if err := h.projects.Delete(c.Request.Context(), req.ID); err != nil {
		h.log.Error().Err(err).Msg("delete project failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete_failed"})
		return
	}

	h.invalidateProjectCache(c)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h HandlerSet) invalidateProjectCache(c *gin.Context) {
	if err := h.projectCache.Invalidate(c.Request.Context()); err != nil {
		h.log.Warn().Err(err).Msg("project cache invalidation failed")
	}
}
