// Package handler provides HTTP handlers for all API endpoints. Read
// endpoints go through the query layer and the in-memory cache; ingestion
// triggers drive the backfill orchestrator against the live upstream client.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/hoopsight/hoopsight-data/internal/api/respond"
	"github.com/hoopsight/hoopsight-data/internal/ask"
	"github.com/hoopsight/hoopsight-data/internal/cache"
	"github.com/hoopsight/hoopsight-data/internal/config"
	"github.com/hoopsight/hoopsight-data/internal/db"
	"github.com/hoopsight/hoopsight-data/internal/external"
	"github.com/hoopsight/hoopsight-data/internal/provider/nbastats"
	"github.com/hoopsight/hoopsight-data/internal/query"
	"github.com/hoopsight/hoopsight-data/internal/seed"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	pool       *db.Pool
	cache      *cache.Cache
	cfg        *config.Config
	logger     *slog.Logger
	queries    *query.Service
	store      *seed.Store
	upstream   *nbastats.Client
	summarizer *external.Summarizer
	ask        *ask.Service
}

// New creates a Handler with shared dependencies.
func New(pool *db.Pool, c *cache.Cache, cfg *config.Config, logger *slog.Logger) *Handler {
	queries := query.New(pool)
	summarizer := external.NewSummarizer(cfg.SummarizerURL, cfg.SummarizerAPIKey, cfg.SummarizerModel)
	return &Handler{
		pool:    pool,
		cache:   c,
		cfg:     cfg,
		logger:  logger,
		queries: queries,
		store:   seed.NewStore(pool.Pool),
		upstream: nbastats.NewClient(nbastats.ClientConfig{
			BaseURL:           cfg.StatsBaseURL,
			Timeout:           cfg.StatsTimeout,
			RequestsPerMinute: cfg.StatsRequestsPerMin,
		}, logger),
		summarizer: summarizer,
		ask:        ask.New(queries, summarizer),
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status, and feature list.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "HoopSight Warehouse API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
		"features": []string{
			"pgxpool_connection_pooling",
			"prepared_statements",
			"idempotent_upsert_ingestion",
			"gzip_compression",
			"in_memory_cache",
			"etag_support",
		},
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Description Verifies Postgres connectivity.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if err := h.pool.HealthCheck(r.Context()); err != nil {
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"error":     "Database connection check failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns in-memory cache statistics (active keys, expired keys).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":     "healthy",
		"cache":      h.cache.Stats(),
		"summarizer": h.summarizer.Status(),
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}
