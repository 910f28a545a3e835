package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hoopsight/hoopsight-data/internal/api/respond"
	"github.com/hoopsight/hoopsight-data/internal/cache"
	"github.com/hoopsight/hoopsight-data/internal/config"
	"github.com/hoopsight/hoopsight-data/internal/query"
)

// respondCached runs fetch on cache miss, stores the marshaled result, and
// serves it with ETag and cache headers. Conditional requests short-circuit
// to 304 on a matching ETag.
func (h *Handler) respondCached(w http.ResponseWriter, r *http.Request, key string, ttl time.Duration, fetch func() (interface{}, error)) {
	if data, etag, ok := h.cache.Get(key); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	v, err := fetch()
	if err != nil {
		h.logger.Error("Query failed", "key", key, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "QUERY_FAILED", "Warehouse query failed")
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Response encoding failed")
		return
	}

	etag := h.cache.Set(key, data, ttl)
	respond.WriteJSON(w, data, etag, ttl, false)
}

// GetCounts returns warehouse row counts.
// @Summary Warehouse row counts
// @Description Returns row counts for teams, players, games, and stat lines.
// @Tags warehouse
// @Produce json
// @Success 200 {object} query.Counts
// @Router /warehouse/counts [get]
func (h *Handler) GetCounts(w http.ResponseWriter, r *http.Request) {
	h.respondCached(w, r, "counts", cache.TTLCounts, func() (interface{}, error) {
		return h.queries.Counts(r.Context())
	})
}

// SearchPlayers finds players by name substring.
// @Summary Search players
// @Description Case-insensitive substring search over player names.
// @Tags warehouse
// @Produce json
// @Param q query string true "Name fragment"
// @Param limit query int false "Max results (default 20, max 50)"
// @Success 200 {array} query.PlayerSummary
// @Failure 400 {object} respond.ErrorResponse
// @Router /warehouse/players/search [get]
func (h *Handler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_QUERY", "q query parameter is required")
		return
	}
	limit := queryInt(r, "limit", 20)

	key := fmt.Sprintf("players:search:%s:%d", q, limit)
	h.respondCached(w, r, key, cache.TTLGameLog, func() (interface{}, error) {
		return h.queries.SearchPlayers(r.Context(), q, limit)
	})
}

// GetPlayerLastN returns a player's recent game log with window averages.
// @Summary Player last-N game log
// @Description Returns the player's most recent regular-season games plus averages over the window. Percentages are ratio-of-totals across the window.
// @Tags warehouse
// @Produce json
// @Param playerID path int true "Player ID"
// @Param n query int false "Window size (default 5, max 82)"
// @Param season query string false "Season label (defaults to current)"
// @Success 200 {object} query.GameLog
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /warehouse/player/{playerID}/last_n [get]
func (h *Handler) GetPlayerLastN(w http.ResponseWriter, r *http.Request) {
	playerID, err := strconv.Atoi(chi.URLParam(r, "playerID"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ID", "Player ID must be an integer")
		return
	}
	n := queryInt(r, "n", 5)
	season := querySeason(r)

	if _, err := h.queries.PlayerByID(r.Context(), playerID); err != nil {
		if query.IsNotFound(err) {
			respond.WriteError(w, http.StatusNotFound, "NOT_FOUND",
				fmt.Sprintf("Player %d not found", playerID))
			return
		}
		respond.WriteError(w, http.StatusInternalServerError, "QUERY_FAILED", "Player lookup failed")
		return
	}

	key := fmt.Sprintf("lastn:%d:%s:%d", playerID, season, n)
	h.respondCached(w, r, key, cache.TTLGameLog, func() (interface{}, error) {
		return h.queries.PlayerLastN(r.Context(), playerID, season, n)
	})
}

// GetLeaders returns a category leaderboard.
// @Summary Category leaderboard
// @Description Per-game-average leaders for counting stats (pts, reb, ast, stl, blk, tov) or ratio-of-totals leaders for shooting categories (fg_pct, fg3_pct, ft_pct).
// @Tags warehouse
// @Produce json
// @Param category path string true "Stat category" Enums(pts, reb, ast, stl, blk, tov, fg_pct, fg3_pct, ft_pct)
// @Param season query string false "Season label (defaults to current)"
// @Param min_gp query int false "Minimum games played (default 10)"
// @Param min_attempts query int false "Minimum attempts, shooting categories only"
// @Param limit query int false "Max results (default 10, max 50)"
// @Success 200 {array} query.Leader
// @Failure 400 {object} respond.ErrorResponse
// @Router /warehouse/leaders/{category} [get]
func (h *Handler) GetLeaders(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	season := querySeason(r)
	minGP := queryInt(r, "min_gp", 0)
	limit := queryInt(r, "limit", 0)

	key := fmt.Sprintf("leaders:%s:%s:%d:%d:%d", category, season, minGP,
		queryInt(r, "min_attempts", 0), limit)

	switch category {
	case "fg_pct", "fg3_pct", "ft_pct":
		minAttempts := queryInt(r, "min_attempts", 0)
		h.respondCached(w, r, key, cache.TTLLeaders, func() (interface{}, error) {
			return h.queries.ShootingLeaders(r.Context(), category, season, minAttempts, minGP, limit)
		})
	case "pts", "reb", "ast", "stl", "blk", "tov":
		h.respondCached(w, r, key, cache.TTLLeaders, func() (interface{}, error) {
			return h.queries.AverageLeaders(r.Context(), category, season, minGP, limit)
		})
	default:
		respond.WriteError(w, http.StatusBadRequest, "INVALID_CATEGORY",
			fmt.Sprintf("Unknown leaderboard category %q", category))
	}
}

// GetTrendingScorers returns the season-vs-recent-window scoring deltas.
// @Summary Trending scorers
// @Description Players whose last-N scoring average most exceeds their season average. Requires a full window of N recent games.
// @Tags warehouse
// @Produce json
// @Param season query string false "Season label (defaults to current)"
// @Param window query int false "Recent window size (default 5, max 20)"
// @Param min_gp query int false "Minimum season games played (default 10)"
// @Param limit query int false "Max results (default 10, max 50)"
// @Success 200 {array} query.TrendingLeader
// @Router /warehouse/leaders/trending [get]
func (h *Handler) GetTrendingScorers(w http.ResponseWriter, r *http.Request) {
	season := querySeason(r)
	window := queryInt(r, "window", 5)
	minGP := queryInt(r, "min_gp", 0)
	limit := queryInt(r, "limit", 0)

	key := fmt.Sprintf("trending:%s:%d:%d:%d", season, window, minGP, limit)
	h.respondCached(w, r, key, cache.TTLLeaders, func() (interface{}, error) {
		return h.queries.TrendingScorers(r.Context(), season, window, minGP, limit)
	})
}

// GetStandings returns the current standings snapshot.
// @Summary Current standings
// @Description Returns the standings snapshot ordered by conference and playoff rank, with each row's refresh timestamp.
// @Tags warehouse
// @Produce json
// @Param season query string false "Season label (defaults to current)"
// @Success 200 {array} query.StandingEntry
// @Router /warehouse/standings/current [get]
func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	season := querySeason(r)

	key := "standings:" + season
	h.respondCached(w, r, key, cache.TTLStandings, func() (interface{}, error) {
		return h.queries.Standings(r.Context(), season)
	})
}

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

func queryInt(r *http.Request, name string, fallback int) int {
	if v := r.URL.Query().Get(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func querySeason(r *http.Request) string {
	if s := r.URL.Query().Get("season"); s != "" {
		return s
	}
	return config.CurrentSeason
}
