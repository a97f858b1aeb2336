package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"portfolio/api/internal/ids"
	"portfolio/api/internal/models"
)

type visitorLogStore interface {
	Insert(ctx context.Context, log models.VisitorLog) error
}

// VisitorLog records public page views. The insert happens off the request
// goroutine with its own deadline, so logging can neither slow down nor
// fail a visitor-facing response.
func VisitorLog(store visitorLogStore, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			entry := models.VisitorLog{
				ID:        ids.New(),
				Path:      c.Request.URL.Path,
				Referrer:  optional(c.Request.Referer()),
				UserAgent: optional(c.Request.UserAgent()),
				IP:        optional(c.ClientIP()),
			}

			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := store.Insert(ctx, entry); err != nil {
					log.Debug().Err(err).Str("path", entry.Path).Msg("visitor log insert failed")
				}
			}()
		}

		c.Next()
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
