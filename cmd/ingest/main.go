// Command ingest is the HoopSight warehouse ingestion CLI.
//
// Usage:
//
//	hoopsight-ingest backfill --days 14
//	hoopsight-ingest backfill --days 30 --max-games 50 --force
//	hoopsight-ingest standings --season 2025-26
//	hoopsight-ingest initdb
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hoopsight/hoopsight-data/internal/backfill"
	"github.com/hoopsight/hoopsight-data/internal/config"
	"github.com/hoopsight/hoopsight-data/internal/db"
	"github.com/hoopsight/hoopsight-data/internal/provider/nbastats"
	"github.com/hoopsight/hoopsight-data/internal/seed"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "hoopsight-ingest",
		Short: "HoopSight warehouse ingestion CLI",
	}

	root.AddCommand(backfillCmd())
	root.AddCommand(standingsCmd())
	root.AddCommand(initdbCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// backfill command
// --------------------------------------------------------------------------

func backfillCmd() *cobra.Command {
	var (
		days     int
		season   string
		maxGames int
		sleepMS  int
		force    bool
	)
	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Backfill box scores for recently completed games",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				client := newUpstreamClient(cfg)
				store := seed.NewStore(pool.Pool)

				sleep := cfg.BackfillSleep
				if sleepMS > 0 {
					sleep = time.Duration(sleepMS) * time.Millisecond
				}
				if days == 0 {
					days = cfg.BackfillDays
				}

				start := time.Now()
				result, err := backfill.Run(ctx, client, store, backfill.Options{
					Days:         days,
					Season:       season,
					MaxGames:     maxGames,
					Sleep:        sleep,
					ForceRefresh: force,
				}, logger)
				logger.Info("Backfill finished",
					"duration", time.Since(start).Round(time.Second),
					"summary", result.Summary())
				for _, e := range result.Errors {
					logger.Error("backfill error", "error", e)
				}
				return err
			})
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "Lookback window in days (default from BACKFILL_DAYS)")
	cmd.Flags().StringVar(&season, "season", config.CurrentSeason, "Season label, e.g. 2025-26")
	cmd.Flags().IntVar(&maxGames, "max-games", 0, "Cap processed games (0 = no cap)")
	cmd.Flags().IntVar(&sleepMS, "sleep", 0, "Delay after each ingested game in ms (default from BACKFILL_SLEEP_MS)")
	cmd.Flags().BoolVar(&force, "force", false, "Re-fetch games already in the warehouse")
	return cmd
}

// --------------------------------------------------------------------------
// standings command
// --------------------------------------------------------------------------

func standingsCmd() *cobra.Command {
	var season string
	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Refresh the standings snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				client := newUpstreamClient(cfg)
				store := seed.NewStore(pool.Pool)

				start := time.Now()
				upserted, err := backfill.RefreshStandings(ctx, client, store, season, logger)
				if err != nil {
					return err
				}
				logger.Info("Standings refresh finished",
					"season", season, "upserted", upserted,
					"duration", time.Since(start).Round(time.Second))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&season, "season", config.CurrentSeason, "Season label, e.g. 2025-26")
	return cmd
}

// --------------------------------------------------------------------------
// initdb command
// --------------------------------------------------------------------------

func initdbCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "initdb",
		Short: "Create warehouse tables and indexes if they do not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Plain pool: the prepared statements the regular pool registers
			// cannot parse before the tables exist.
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			pool, err := db.NewPlain(ctx, cfg)
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer pool.Close()

			if err := db.EnsureSchema(ctx, pool); err != nil {
				return fmt.Errorf("ensure schema: %w", err)
			}
			logger.Info("Warehouse schema ready")
			return nil
		},
	}
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

func newUpstreamClient(cfg *config.Config) *nbastats.Client {
	return nbastats.NewClient(nbastats.ClientConfig{
		BaseURL:           cfg.StatsBaseURL,
		Timeout:           cfg.StatsTimeout,
		RequestsPerMinute: cfg.StatsRequestsPerMin,
	}, logger)
}

// runIngest handles config loading, DB connection, and context cancellation.
func runIngest(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}
