package app

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scoreline/tracker/internal/auth"
	"github.com/scoreline/tracker/internal/engine"
	"github.com/scoreline/tracker/internal/handler"
	"github.com/scoreline/tracker/internal/infra"
	"github.com/scoreline/tracker/internal/provider"
	"github.com/scoreline/tracker/internal/service"
)

// RouterDeps holds all dependencies needed by NewRouter.
type RouterDeps struct {
	Pool   *pgxpool.Pool
	Config *infra.Config
	JWTMgr *auth.JWTManager
	Logger *slog.Logger
}

// NewRouter assembles the chi.Router with all routes and middleware.
func NewRouter(deps RouterDeps) chi.Router {
	pool := deps.Pool
	cfg := deps.Config
	jwtMgr := deps.JWTMgr
	logger := deps.Logger

	// External provider
	osuClient := provider.NewOsuClient(cfg.OsuClientID, cfg.OsuClientSecret, cfg.OsuRedirectURI, logger)

	// Classifier configuration
	classifier := engine.ClassifierConfig{
		TolerancePct: cfg.FCTolerancePct,
		ToleranceCap: cfg.FCToleranceCap,
	}

	// Services
	authSvc := service.NewAuthService(pool, osuClient, jwtMgr, logger)
	trackerSvc := service.NewTrackerService(pool, osuClient, classifier, cfg.RecentFetchLimit, logger)
	goalSvc := service.NewGoalService(pool, logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	dashboardHandler := handler.NewDashboardHandler(trackerSvc)
	scoreHandler := handler.NewScoreHandler(trackerSvc)
	goalHandler := handler.NewGoalHandler(goalSvc)
	settingsHandler := handler.NewSettingsHandler(trackerSvc)

	// Router
	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(handler.Recovery(logger))
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(logger))
	r.Use(handler.CORS(cfg.CORSAllowedOrigins))
	r.Use(handler.JSONContentType)

	// Health (no auth)
	r.Get("/health", handler.HealthHandler(pool))

	// Auth routes (no auth)
	r.Route("/auth", func(r chi.Router) {
		r.Get("/login", authHandler.Login)
		r.Get("/callback", authHandler.Callback)
	})

	// Player-authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(auth.Authenticate(jwtMgr))

		r.Get("/dashboard", dashboardHandler.Get)

		r.Route("/scores", func(r chi.Router) {
			r.Post("/check", scoreHandler.Check)
			r.Get("/export", scoreHandler.Export)
		})

		r.Route("/goals", func(r chi.Router) {
			r.Get("/", goalHandler.List)
			r.Post("/", goalHandler.Create)
			r.Put("/order", goalHandler.Reorder)
			r.Get("/presets", goalHandler.ListPresets)
			r.Post("/presets/{key}", goalHandler.CreateFromPreset)
			r.Post("/{id}/lock", goalHandler.SetLocked(true))
			r.Post("/{id}/unlock", goalHandler.SetLocked(false))
			r.Post("/{id}/pause", goalHandler.SetPaused(true))
			r.Post("/{id}/resume", goalHandler.SetPaused(false))
			r.Get("/{id}/contributions", goalHandler.Contributions)
			r.Delete("/{id}", goalHandler.Delete)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Post("/reset", settingsHandler.ResetHistory)
			r.Delete("/account", settingsHandler.DeleteAccount)
		})
	})

	return r
}
