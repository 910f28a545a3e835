package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/hoopsight/hoopsight-data/internal/api/handler"
	"github.com/hoopsight/hoopsight-data/internal/cache"
	"github.com/hoopsight/hoopsight-data/internal/config"
	"github.com/hoopsight/hoopsight-data/internal/db"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(pool *db.Pool, appCache *cache.Cache, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "Link", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(pool, appCache, cfg, logger)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// Warehouse routes
	r.Route("/warehouse", func(r chi.Router) {
		// Sanity
		r.Get("/counts", h.GetCounts)

		// Players
		r.Get("/players/search", h.SearchPlayers)
		r.Get("/player/{playerID}/last_n", h.GetPlayerLastN)

		// Leaderboards. Static "trending" route wins over the category param.
		r.Get("/leaders/trending", h.GetTrendingScorers)
		r.Get("/leaders/{category}", h.GetLeaders)

		// Standings
		r.Get("/standings/current", h.GetStandings)

		// Ingestion triggers
		r.Post("/refresh/last_days", h.RefreshLastDays)
		r.Post("/standings/refresh", h.RefreshStandings)
		// GET kept as well: upstream schedulers that can only issue GETs
		// use this form.
		r.Get("/standings/refresh", h.RefreshStandings)

		// Natural-language Q&A
		r.Post("/ask", h.Ask)
	})

	return r
}
