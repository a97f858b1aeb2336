package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio/api/internal/models"
)

const visitorLogLimit = 100

type visitorLogResponse struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	Referrer  *string   `json:"referrer"`
	Country   *string   `json:"country"`
	City      *string   `json:"city"`
	UserAgent *string   `json:"userAgent"`
	IP        *string   `json:"ip"`
	CreatedAt time.Time `json:"createdAt"`
}

func (h HandlerSet) ListVisitorLogs(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))

	logs, err := h.visitorLogs.Search(c.Request.Context(), q, visitorLogLimit)
	if err != nil {
		h.log.Error().Err(err).Msg("visitor log query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "logs_failed"})
		return
	}

	out := make([]visitorLogResponse, 0, len(logs))
	for _, entry := range logs {
		out = append(out, visitorLogResponse{
			ID:        entry.ID,
			Path:      entry.Path,
			Referrer:  entry.Referrer,
			Country:   entry.Country,
			City:      entry.City,
			UserAgent: entry.UserAgent,
			IP:        entry.IP,
			CreatedAt: entry.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"logs": out})
}

type contactMessageResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

func (h HandlerSet) ListMessages(c *gin.Context) {
	messages, err := h.messages.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list messages failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "messages_failed"})
		return
	}

	out := make([]contactMessageResponse, 0, len(messages))
	for _, msg := range messages {
		out = append(out, toMessageResponse(msg))
	}

	c.JSON(http.StatusOK, gin.H{"messages": out})
}

func toMessageResponse(msg models.ContactMessage) contactMessageResponse {
	return contactMessageResponse{
		ID:        msg.ID,
		Name:      msg.Name,
		Email:     msg.Email,
		Phone:     msg.Phone,
		Message:   msg.Message,
		IsRead:    msg.IsRead,
		CreatedAt: msg.CreatedAt,
	}
}
