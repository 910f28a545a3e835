package backfill

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hoopsight/hoopsight-data/internal/config"
	"github.com/hoopsight/hoopsight-data/internal/normalize"
	"github.com/hoopsight/hoopsight-data/internal/provider"
)

// StandingsSource fetches raw standings rows from the upstream provider.
type StandingsSource interface {
	FetchStandings(ctx context.Context, season, seasonType string) ([]provider.Row, error)
}

// StandingsStore replaces the standings snapshot for a season.
type StandingsStore interface {
	ReplaceStandings(ctx context.Context, standings []provider.StandingRow) (int, error)
}

// RefreshStandings pulls the current standings from the provider and
// overwrites the season's snapshot rows wholesale.
func RefreshStandings(ctx context.Context, src StandingsSource, store StandingsStore, season string, logger *slog.Logger) (int, error) {
	if season == "" {
		season = config.CurrentSeason
	}

	rows, err := src.FetchStandings(ctx, season, config.SeasonTypeRegular)
	if err != nil {
		return 0, fmt.Errorf("refresh standings: %w", err)
	}

	standings := normalize.Standings(season, rows)
	upserted, err := store.ReplaceStandings(ctx, standings)
	if err != nil {
		return 0, fmt.Errorf("refresh standings: %w", err)
	}

	logger.Info("Standings refreshed", "season", season, "upserted", upserted)
	return upserted, nil
}
