package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"portfolio/api/internal/config"
)

// Preview is the synthesized rendering of a destination URL across the
// viewport profiles, ready to be persisted onto a project. Nil pointer
// fields become NULL columns.
type Preview struct {
	Image       *string
	Images      []string
	Title       *string
	Description *string
	Domain      *string
}

type viewport struct {
	Width             int
	Height            int
	DeviceScaleFactor int
	IsMobile          bool
}

var (
	desktopViewport = viewport{Width: 1280, Height: 720, DeviceScaleFactor: 1}
	mobileViewport  = viewport{Width: 390, Height: 844, DeviceScaleFactor: 2, IsMobile: true}
)

// snapshot is one rendering-service answer; empty strings mean the field
// was absent or the call failed.
type snapshot struct {
	ScreenshotURL string
	Title         string
	Description   string
	ResolvedURL   string
}

// PreviewService fetches metadata and screenshots of a URL from an external
// rendering service. Every sub-call is best-effort; the service never
// returns an error because a preview must never block a project write.
type PreviewService struct {
	httpClient *http.Client
	baseURL    string
	log        zerolog.Logger
}

func NewPreviewService(cfg config.PreviewConfig, log zerolog.Logger) *PreviewService {
	return &PreviewService{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		log:        log,
	}
}

// Synchronize renders targetURL three times: once with service defaults for
// metadata, then under the desktop and mobile viewports for screenshots.
// The calls have no ordering dependency and run concurrently; results are
// merged only after all three have settled.
func (s *PreviewService) Synchronize(ctx context.Context, targetURL string) Preview {
	var (
		wg                    sync.WaitGroup
		base, desktop, mobile snapshot
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		base = s.fetchOnce(ctx, targetURL, nil)
	}()
	go func() {
		defer wg.Done()
		desktop = s.fetchOnce(ctx, targetURL, &desktopViewport)
	}()
	go func() {
		defer wg.Done()
		mobile = s.fetchOnce(ctx, targetURL, &mobileViewport)
	}()
	wg.Wait()

	return merge(targetURL, base, desktop, mobile)
}

func merge(targetURL string, base, desktop, mobile snapshot) Preview {
	// Desktop before mobile, dropped slots omitted.
	images := make([]string, 0, 2)
	for _, shot := range []string{desktop.ScreenshotURL, mobile.ScreenshotURL} {
		if shot != "" {
			images = append(images, shot)
		}
	}

	preview := Preview{Images: images}

	if len(images) > 0 {
		preview.Image = &images[0]
	} else if base.ScreenshotURL != "" {
		preview.Image = &base.ScreenshotURL
	}

	if base.Title != "" {
		preview.Title = &base.Title
	}
	if base.Description != "" {
		preview.Description = &base.Description
	}

	if domain := hostnameOf(base.ResolvedURL); domain != "" {
		preview.Domain = &domain
	} else if domain := hostnameOf(targetURL); domain != "" {
		preview.Domain = &domain
	}

	return preview
}

// fetchOnce performs one rendering call. A nil viewport asks for service
// defaults, which is the only call whose metadata is trusted.
func (s *PreviewService) fetchOnce(ctx context.Context, targetURL string, vp *viewport) snapshot {
	params := url.Values{}
	params.Set("url", targetURL)
	params.Set("screenshot", "true")
	params.Set("meta", "true")
	if vp != nil {
		params.Set("viewport.width", strconv.Itoa(vp.Width))
		params.Set("viewport.height", strconv.Itoa(vp.Height))
		params.Set("viewport.deviceScaleFactor", strconv.Itoa(vp.DeviceScaleFactor))
		params.Set("viewport.isMobile", strconv.FormatBool(vp.IsMobile))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/?"+params.Encode(), nil)
	if err != nil {
		s.log.Debug().Err(err).Str("url", targetURL).Msg("preview request build failed")
		return snapshot{}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.log.Debug().Err(err).Str("url", targetURL).Msg("preview call failed")
		return snapshot{}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.log.Debug().Int("status", resp.StatusCode).Str("url", targetURL).Msg("preview call rejected")
		return snapshot{}
	}

	var payload struct {
		Data struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			URL         string `json:"url"`
			Screenshot  struct {
				URL string `json:"url"`
			} `json:"screenshot"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		s.log.Debug().Err(err).Str("url", targetURL).Msg("preview payload malformed")
		return snapshot{}
	}

	return snapshot{
		ScreenshotURL: payload.Data.Screenshot.URL,
		Title:         payload.Data.Title,
		Description:   payload.Data.Description,
		ResolvedURL:   payload.Data.URL,
	}
}

func hostnameOf(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
