package handlers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio/api/internal/media/sniffer"
)

func (h HandlerSet) GetResume(c *gin.Context) {
	settings, err := h.settings.Get(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("load resume settings failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "resume_failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"resumeUrl":       settings.ResumeURL,
		"resumeUpdatedAt": settings.ResumeUpdatedAt,
	})
}

// UploadResume stores a PDF in object storage and records its reference.
// Storage configuration is checked here, not at startup; nothing else in
// the process needs the object store to function.
func (h HandlerSet) UploadResume(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "object storage is not configured"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_file"})
		return
	}

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	detected, err := sniffer.DetectHead(head)
	if err != nil || detected.Type != sniffer.TypePDF {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only_pdf_allowed"})
		return
	}

	key := fmt.Sprintf("resume/resume-%d.pdf", time.Now().UnixMilli())
	ref, err := h.store.Upload(c.Request.Context(), key, readerOf(data), int64(len(data)), "application/pdf")
	if err != nil {
		h.log.Error().Err(err).Str("filename", header.Filename).Msg("resume upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload_failed"})
		return
	}

	if err := h.settings.UpsertResume(c.Request.Context(), ref, time.Now()); err != nil {
		h.respondStoreError(c, err, "persist resume reference failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "resumeUrl": ref})
}
