package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"portfolio/api/internal/cache"
	"portfolio/api/internal/config"
	"portfolio/api/internal/middleware"
	"portfolio/api/internal/models"
	"portfolio/api/internal/repository"
	"portfolio/api/internal/service"
	"portfolio/api/internal/storage"
)

// Store interfaces are narrowed to what the handlers call so tests can
// substitute fakes; the concrete pgx repositories satisfy them.
type projectStore interface {
	List(ctx context.Context, onlyVisible bool) ([]models.Project, error)
	GetByID(ctx context.Context, id string) (models.Project, error)
	Create(ctx context.Context, project models.Project) error
	Update(ctx context.Context, id string, patch repository.ProjectPatch) (models.Project, error)
	Delete(ctx context.Context, id string) error
	ApplyEngagement(ctx context.Context, id string, like bool, rating int) (models.EngagementCounters, error)
}

type settingsStore interface {
	Get(ctx context.Context) (models.SiteSettings, error)
	UpsertResume(ctx context.Context, resumeURL string, updatedAt time.Time) error
	UpsertHeroRoles(ctx context.Context, heroRoles []string) error
}

type visitorLogStore interface {
	Insert(ctx context.Context, log models.VisitorLog) error
	Search(ctx context.Context, q string, limit int) ([]models.VisitorLog, error)
}

type contactMessageStore interface {
	Insert(ctx context.Context, msg models.ContactMessage) error
	List(ctx context.Context) ([]models.ContactMessage, error)
}

type HandlerSet struct {
	log          zerolog.Logger
	cfg          *config.AppConfig
	auth         *service.AuthService
	preview      *service.PreviewService
	db           *pgxpool.Pool
	redis        *redis.Client
	store        *storage.ObjectStore
	projectCache *cache.ProjectListCache
	projects     projectStore
	settings     settingsStore
	visitorLogs  visitorLogStore
	messages     contactMessageStore
}

// NewHandlerSet wires repositories and services over the shared pool and
// clients. store may be nil when object storage is not configured; upload
// paths report that at call time.
func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, redisClient *redis.Client, store *storage.ObjectStore, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)

	return HandlerSet{
		log:          log,
		cfg:          cfg,
		auth:         service.NewAuthService(userRepo, cfg, log),
		preview:      service.NewPreviewService(cfg.Preview, log),
		db:           db,
		redis:        redisClient,
		store:        store,
		projectCache: cache.NewProjectListCache(redisClient, cfg.Cache.ProjectsTTL),
		projects:     repository.NewProjectRepository(db),
		settings:     repository.NewSettingsRepository(db),
		visitorLogs:  repository.NewVisitorLogRepository(db),
		messages:     repository.NewContactMessageRepository(db),
	}
}

// Auth exposes the auth engine for middleware wiring.
func (h HandlerSet) Auth() *service.AuthService {
	return h.auth
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	v1 := router.Group("/v1")

	public := v1.Group("")
	public.Use(middleware.VisitorLog(h.visitorLogs, h.log))
	public.GET("/projects", h.ListPublicProjects)
	public.GET("/resume", h.ResumeRedirect)

	v1.POST("/projects/engagement", h.ApplyEngagement)
	v1.POST("/contact", h.SubmitContact)

	admin := v1.Group("/admin")
	admin.POST("/login", h.Login)
	admin.POST("/logout", h.Logout)

	guarded := v1.Group("/admin")
	guarded.Use(middleware.AdminAuth(h.auth))
	guarded.GET("/session", h.Session)
	guarded.GET("/projects", h.AdminListProjects)
	guarded.POST("/projects", h.CreateProject)
	guarded.PATCH("/projects", h.UpdateProject)
	guarded.DELETE("/projects", h.DeleteProject)
	guarded.POST("/projects/screenshots", h.UploadScreenshots)
	guarded.GET("/settings", h.GetSettings)
	guarded.PATCH("/settings", h.UpdateSettings)
	guarded.GET("/resume", h.GetResume)
	guarded.POST("/resume", h.UploadResume)
	guarded.GET("/visitor-logs", h.ListVisitorLogs)
	guarded.GET("/messages", h.ListMessages)
}
