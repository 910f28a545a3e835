package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hoopsight/hoopsight-data/internal/api/respond"
	"github.com/hoopsight/hoopsight-data/internal/ask"
	"github.com/hoopsight/hoopsight-data/internal/backfill"
	"github.com/hoopsight/hoopsight-data/internal/external"
)

// refreshRequest is the POST body for /warehouse/refresh/last_days.
// Zero values fall back to configured defaults.
type refreshRequest struct {
	Days     int    `json:"days"`
	Season   string `json:"season"`
	MaxGames int    `json:"max_games"`
	Force    bool   `json:"force"`
}

// RefreshLastDays runs a backfill pass over the recent date window.
// @Summary Backfill recent games
// @Description Discovers games in the lookback window, fetches box scores, and upserts them. Runs synchronously and returns the fetched/skipped/failed summary.
// @Tags ingest
// @Accept json
// @Produce json
// @Param request body refreshRequest false "Run options"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /warehouse/refresh/last_days [post]
func (h *Handler) RefreshLastDays(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be JSON")
			return
		}
	}
	if req.Days == 0 {
		req.Days = h.cfg.BackfillDays
	}

	result, err := backfill.Run(r.Context(), h.upstream, h.store, backfill.Options{
		Days:         req.Days,
		Season:       req.Season,
		MaxGames:     req.MaxGames,
		Sleep:        h.cfg.BackfillSleep,
		ForceRefresh: req.Force,
	}, h.logger)
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusBadGateway, "REFRESH_FAILED",
			"Backfill run failed", err.Error())
		return
	}

	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"days":    req.Days,
		"found":   result.Found,
		"fetched": result.Fetched,
		"skipped": result.Skipped,
		"failed":  result.Failed,
		"errors":  result.Errors,
		"summary": result.Summary(),
	})
}

// RefreshStandings re-fetches and overwrites the standings snapshot.
// @Summary Refresh standings
// @Description Fetches current standings from the upstream provider and replaces the season's snapshot. Registered for both POST and GET.
// @Tags ingest
// @Produce json
// @Param season query string false "Season label (defaults to current)"
// @Success 200 {object} map[string]interface{}
// @Failure 502 {object} respond.ErrorResponse
// @Router /warehouse/standings/refresh [post]
func (h *Handler) RefreshStandings(w http.ResponseWriter, r *http.Request) {
	season := querySeason(r)

	upserted, err := backfill.RefreshStandings(r.Context(), h.upstream, h.store, season, h.logger)
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusBadGateway, "REFRESH_FAILED",
			"Standings refresh failed", err.Error())
		return
	}

	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"season":   season,
		"upserted": upserted,
	})
}

// askRequest is the POST body for /warehouse/ask.
type askRequest struct {
	Question string `json:"question"`
	Season   string `json:"season"`
}

// Ask answers a natural-language question about the warehouse.
// @Summary Natural-language Q&A
// @Description Matches the question against the intent table, runs the corresponding warehouse query, and returns both the structured data and a summarized prose answer.
// @Tags warehouse
// @Accept json
// @Produce json
// @Param request body askRequest true "Question"
// @Success 200 {object} ask.Answer
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 422 {object} respond.ErrorResponse
// @Failure 503 {object} respond.ErrorResponse
// @Router /warehouse/ask [post]
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be JSON with a question field")
		return
	}
	if req.Question == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_QUESTION", "question is required")
		return
	}

	answer, err := h.ask.Dispatch(r.Context(), req.Question, req.Season)
	switch {
	case err == nil:
		respond.WriteJSONObject(w, http.StatusOK, answer)
	case errors.Is(err, external.ErrNotConfigured):
		respond.WriteError(w, http.StatusServiceUnavailable, "SUMMARIZER_UNAVAILABLE",
			"Natural-language answers require a configured summarizer")
	case errors.Is(err, ask.ErrNoIntent):
		respond.WriteErrorDetail(w, http.StatusUnprocessableEntity, "NO_INTENT",
			"Question not understood", err.Error())
	case errors.Is(err, ask.ErrPlayerNotFound):
		respond.WriteErrorDetail(w, http.StatusNotFound, "PLAYER_NOT_FOUND",
			"Player not found in warehouse", err.Error())
	default:
		h.logger.Error("Ask dispatch failed", "question", req.Question, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "ASK_FAILED", "Question processing failed")
	}
}
