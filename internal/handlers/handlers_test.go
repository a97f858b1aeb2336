package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"portfolio/api/internal/config"
	"portfolio/api/internal/models"
	"portfolio/api/internal/repository"
	"portfolio/api/internal/security"
	"portfolio/api/internal/service"
)

type fakeProjectStore struct {
	mu          sync.Mutex
	projects    map[string]models.Project
	engagements int
	writes      int
}

func newFakeProjectStore(projects ...models.Project) *fakeProjectStore {
	store := &fakeProjectStore{projects: map[string]models.Project{}}
	for _, p := range projects {
		store.projects[p.ID] = p
	}
	return store
}

func (f *fakeProjectStore) List(_ context.Context, onlyVisible bool) ([]models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]models.Project, 0, len(f.projects))
	for _, p := range f.projects {
		if onlyVisible && !p.IsVisible {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (f *fakeProjectStore) GetByID(_ context.Context, id string) (models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.projects[id]
	if !ok {
		return models.Project{}, repository.ErrProjectNotFound
	}
	return p, nil
}

func (f *fakeProjectStore) Create(_ context.Context, project models.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.writes++
	f.projects[project.ID] = project
	return nil
}

func (f *fakeProjectStore) Update(_ context.Context, id string, patch repository.ProjectPatch) (models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.projects[id]
	if !ok {
		return models.Project{}, repository.ErrProjectNotFound
	}

	f.writes++
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.URL != nil {
		p.URL = *patch.URL
	}
	if patch.Description != nil {
		p.Description = patch.Description
	}
	if patch.Order != nil {
		p.Order = *patch.Order
	}
	if patch.IsVisible != nil {
		p.IsVisible = *patch.IsVisible
	}
	if patch.TechStack != nil {
		p.TechStack = patch.TechStack
	}
	if patch.PreviewImages != nil {
		p.PreviewImages = patch.PreviewImages
	}
	if patch.Preview != nil {
		p.PreviewImage = patch.Preview.Image
		p.PreviewImages = patch.Preview.Images
		p.PreviewTitle = patch.Preview.Title
		p.PreviewDescription = patch.Preview.Description
		p.PreviewDomain = patch.Preview.Domain
		fetched := patch.Preview.FetchedAt
		p.PreviewFetchedAt = &fetched
	}
	f.projects[id] = p
	return p, nil
}

func (f *fakeProjectStore) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.writes++
	delete(f.projects, id)
	return nil
}

func (f *fakeProjectStore) ApplyEngagement(_ context.Context, id string, like bool, rating int) (models.EngagementCounters, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.projects[id]
	if !ok {
		return models.EngagementCounters{}, repository.ErrProjectNotFound
	}

	f.engagements++
	if like {
		p.LikesCount++
	}
	if rating > 0 {
		p.RatingCount++
		p.RatingSum += rating
	}
	f.projects[id] = p

	return models.EngagementCounters{
		ProjectID:   p.ID,
		LikesCount:  p.LikesCount,
		RatingCount: p.RatingCount,
		RatingSum:   p.RatingSum,
	}, nil
}

type fakeSettingsStore struct {
	settings    models.SiteSettings
	rolesCalls  int
	resumeCalls int
}

func (f *fakeSettingsStore) Get(_ context.Context) (models.SiteSettings, error) {
	return f.settings, nil
}

func (f *fakeSettingsStore) UpsertResume(_ context.Context, resumeURL string, updatedAt time.Time) error {
	f.resumeCalls++
	f.settings.ResumeURL = &resumeURL
	f.settings.ResumeUpdatedAt = &updatedAt
	return nil
}

func (f *fakeSettingsStore) UpsertHeroRoles(_ context.Context, heroRoles []string) error {
	f.rolesCalls++
	f.settings.HeroRoles = heroRoles
	return nil
}

type fakeVisitorLogStore struct {
	mu   sync.Mutex
	logs []models.VisitorLog
}

func (f *fakeVisitorLogStore) Insert(_ context.Context, log models.VisitorLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs = append(f.logs, log)
	return nil
}

func (f *fakeVisitorLogStore) Search(_ context.Context, q string, limit int) ([]models.VisitorLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]models.VisitorLog, 0, len(f.logs))
	for _, entry := range f.logs {
		if q == "" || strings.Contains(entry.Path, q) {
			out = append(out, entry)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeContactMessageStore struct {
	mu       sync.Mutex
	messages []models.ContactMessage
}

func (f *fakeContactMessageStore) Insert(_ context.Context, msg models.ContactMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeContactMessageStore) List(_ context.Context) ([]models.ContactMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.ContactMessage(nil), f.messages...), nil
}

type fakeUserStore struct {
	users map[string]models.User
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	user, ok := f.users[email]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, id string, hashed string) error {
	for email, user := range f.users {
		if user.ID == id {
			user.Password = hashed
			f.users[email] = user
		}
	}
	return nil
}

const (
	testAdminEmail    = "admin@example.com"
	testAdminPassword = "s3cret-password"
)

type testEnv struct {
	router      *gin.Engine
	handlers    HandlerSet
	cfg         *config.AppConfig
	projects    *fakeProjectStore
	settings    *fakeSettingsStore
	visitorLogs *fakeVisitorLogStore
	messages    *fakeContactMessageStore
	users       *fakeUserStore
}

// newTestEnv wires the full route table over in-memory fakes. previewURL
// points the preview synchronizer somewhere; an unroutable address makes
// every preview call fail fast, which is exactly the degraded mode most
// tests want.
func newTestEnv(t *testing.T, previewURL string) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if previewURL == "" {
		previewURL = "http://127.0.0.1:1"
	}

	hashed, err := security.HashPassword(testAdminPassword)
	require.NoError(t, err)

	env := &testEnv{
		cfg: &config.AppConfig{
			Environment: "test",
			Session:     config.SessionConfig{Secret: "test-secret", TTL: time.Hour},
			Preview:     config.PreviewConfig{BaseURL: previewURL, Timeout: 2 * time.Second},
		},
		projects:    newFakeProjectStore(),
		settings:    &fakeSettingsStore{},
		visitorLogs: &fakeVisitorLogStore{},
		messages:    &fakeContactMessageStore{},
		users: &fakeUserStore{users: map[string]models.User{
			testAdminEmail: {
				ID:       "user-1",
				Email:    testAdminEmail,
				Password: hashed,
				Role:     models.UserRoleSuperAdmin,
			},
		}},
	}

	logger := zerolog.Nop()
	env.handlers = HandlerSet{
		log:         logger,
		cfg:         env.cfg,
		auth:        service.NewAuthService(env.users, env.cfg, logger),
		preview:     service.NewPreviewService(env.cfg.Preview, logger),
		projects:    env.projects,
		settings:    env.settings,
		visitorLogs: env.visitorLogs,
		messages:    env.messages,
	}

	env.router = gin.New()
	env.handlers.Register(env.router.Group("/api"))
	return env
}

func (env *testEnv) request(t *testing.T, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

// login performs a real login request and returns the session cookie.
func (env *testEnv) login(t *testing.T) *http.Cookie {
	t.Helper()

	rec := env.request(t, http.MethodPost, "/api/v1/admin/login",
		`{"email":"`+testAdminEmail+`","password":"`+testAdminPassword+`"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "admin_session" && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatal("login response carried no session cookie")
	return nil
}
