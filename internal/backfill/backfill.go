// Package backfill drives end-to-end ingestion runs: discover game IDs in a
// date window, fetch each box score, normalize, and upsert — one transaction
// per game, so a failure mid-game rolls back that game only and the run
// keeps going.
package backfill

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/hoopsight/hoopsight-data/internal/config"
	"github.com/hoopsight/hoopsight-data/internal/normalize"
	"github.com/hoopsight/hoopsight-data/internal/provider"
)

// Upstream is the slice of the provider client the orchestrator consumes.
type Upstream interface {
	FindGames(ctx context.Context, dateFrom, dateTo time.Time, season, seasonType string) ([]provider.DiscoveredGame, error)
	FetchBoxScore(ctx context.Context, gameID string) (playerRows, teamRows []provider.Row, err error)
}

// Warehouse is the write side the orchestrator needs.
type Warehouse interface {
	LoadedGameIDs(ctx context.Context, season string) (map[string]struct{}, error)
	IngestGame(ctx context.Context, recs *normalize.GameRecords) error
}

// Options configures one ingestion run.
type Options struct {
	// Days is the lookback window: games from now-Days through now.
	Days int
	// Season label, e.g. "2025-26".
	Season string
	// SeasonType passed to discovery, e.g. "Regular Season".
	SeasonType string
	// MaxGames caps the number of discovered games processed (0 = no cap).
	MaxGames int
	// Sleep is the politeness delay after each successfully ingested game.
	// Not applied after skips.
	Sleep time.Duration
	// ForceRefresh disables the already-ingested skip set: every discovered
	// game is re-fetched and overwritten.
	ForceRefresh bool
}

func (o *Options) withDefaults() Options {
	opts := *o
	if opts.Days <= 0 {
		opts.Days = 14
	}
	if opts.Season == "" {
		opts.Season = config.CurrentSeason
	}
	if opts.SeasonType == "" {
		opts.SeasonType = config.SeasonTypeRegular
	}
	return opts
}

// Result tracks counts from one ingestion run. The run always completes with
// a summary; individual game failures never abort it.
type Result struct {
	Found   int
	Fetched int
	Skipped int
	Failed  int
	Errors  []string
}

// Summary returns a human-readable summary of the run.
func (r *Result) Summary() string {
	return fmt.Sprintf("found=%d fetched=%d skipped=%d failed=%d",
		r.Found, r.Fetched, r.Skipped, r.Failed)
}

func (r *Result) addErrorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Run executes one backfill pass. Games are processed strictly sequentially
// to respect upstream rate limits. A non-nil error is returned only for
// discovery failure or operator interruption; per-game failures are counted
// in the result. On interruption, work already committed stays committed.
func Run(ctx context.Context, up Upstream, wh Warehouse, opts Options, logger *slog.Logger) (Result, error) {
	opts = opts.withDefaults()
	var result Result

	dateTo := time.Now().UTC()
	dateFrom := dateTo.AddDate(0, 0, -opts.Days)

	logger.Info("Discovering games",
		"from", dateFrom.Format("2006-01-02"), "to", dateTo.Format("2006-01-02"),
		"season", opts.Season, "season_type", opts.SeasonType)

	discovered, err := up.FindGames(ctx, dateFrom, dateTo, opts.Season, opts.SeasonType)
	if err != nil {
		return result, fmt.Errorf("discover games: %w", err)
	}

	gameIDs, dates := dedupeGames(discovered)
	if opts.MaxGames > 0 && len(gameIDs) > opts.MaxGames {
		gameIDs = gameIDs[:opts.MaxGames]
	}
	result.Found = len(gameIDs)
	logger.Info("Games discovered", "count", len(gameIDs), "max_games", opts.MaxGames)

	loaded := map[string]struct{}{}
	if !opts.ForceRefresh {
		loaded, err = wh.LoadedGameIDs(ctx, opts.Season)
		if err != nil {
			return result, fmt.Errorf("load ingested game ids: %w", err)
		}
		logger.Info("Already loaded games", "count", len(loaded))
	}

	for i, gameID := range gameIDs {
		// Operator interruption is honored at game boundaries only.
		if err := ctx.Err(); err != nil {
			logger.Warn("Run interrupted, prior commits stand", "processed", i)
			return result, err
		}

		if _, ok := loaded[gameID]; ok {
			result.Skipped++
			continue
		}

		logger.Info("Fetching box score", "game_id", gameID, "progress", fmt.Sprintf("%d/%d", i+1, len(gameIDs)))

		playerRows, teamRows, err := up.FetchBoxScore(ctx, gameID)
		if errors.Is(err, provider.ErrUnavailable) {
			result.Skipped++
			logger.Info("Box score not available yet, skipping", "game_id", gameID)
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			result.Failed++
			result.addErrorf("fetch %s: %v", gameID, err)
			logger.Error("Box score fetch failed", "game_id", gameID, "error", err)
			continue
		}

		recs, err := normalize.Game(gameID, opts.Season, dates[gameID], playerRows, teamRows)
		if err != nil {
			result.Failed++
			result.addErrorf("normalize %s: %v", gameID, err)
			logger.Error("Normalization failed", "game_id", gameID, "error", err)
			continue
		}

		if err := wh.IngestGame(ctx, recs); err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			result.Failed++
			result.addErrorf("ingest %s: %v", gameID, err)
			logger.Error("Game ingest failed, rolled back", "game_id", gameID, "error", err)
			continue
		}

		result.Fetched++
		loaded[gameID] = struct{}{}

		// Be polite to the upstream service; throttle only after a
		// successful ingest.
		if opts.Sleep > 0 {
			select {
			case <-time.After(opts.Sleep):
			case <-ctx.Done():
				logger.Warn("Run interrupted, prior commits stand", "processed", i+1)
				return result, ctx.Err()
			}
		}
	}

	logger.Info("Backfill complete", "summary", result.Summary())
	return result, nil
}

// dedupeGames collapses discovery rows (one per participating team) into a
// sorted, unique ID list plus each game's raw discovery date. Sorting makes
// runs deterministic.
func dedupeGames(discovered []provider.DiscoveredGame) ([]string, map[string]any) {
	dates := make(map[string]any, len(discovered))
	for _, g := range discovered {
		if _, seen := dates[g.GameID]; !seen || dates[g.GameID] == nil {
			dates[g.GameID] = g.RawDate
		}
	}
	ids := make([]string, 0, len(dates))
	for id := range dates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, dates
}
