package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio/api/internal/ids"
	"portfolio/api/internal/media/sniffer"
	"portfolio/api/internal/repository"
)

// UploadScreenshots adds admin-supplied screenshot images to a project's
// storage prefix and returns their public URLs. The returned URLs are what
// the admin UI feeds back through a project update's previewImages field.
func (h HandlerSet) UploadScreenshots(c *gin.Context) {
	projectID := c.Query("projectId")
	if projectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_project_id"})
		return
	}

	if _, err := h.projects.GetByID(c.Request.Context(), projectID); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			return
		}
		h.log.Error().Err(err).Msg("load project for screenshots failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload_failed"})
		return
	}

	if h.store == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "object storage is not configured"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_form"})
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no_files"})
		return
	}

	urls := make([]string, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_file"})
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_file"})
			return
		}

		head := data
		if len(head) > 512 {
			head = head[:512]
		}
		detected, err := sniffer.DetectHead(head)
		if err != nil || !detected.IsImage() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "images_only"})
			return
		}

		key := fmt.Sprintf("projects/%s/%d-%s.%s", projectID, time.Now().UnixMilli(), ids.New(), detected.Type)
		if _, err := h.store.Upload(c.Request.Context(), key, readerOf(data), int64(len(data)), detected.MIME); err != nil {
			h.log.Error().Err(err).Str("filename", header.Filename).Msg("screenshot upload failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "upload_failed"})
			return
		}
		urls = append(urls, h.store.PublicURL(key))
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "urls": urls})
}

func readerOf(data []byte) io.Reader {
	return bytes.NewReader(data)
}
