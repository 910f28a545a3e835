// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hoopsight/hoopsight-data/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// NewPlain creates a pool without prepared-statement registration. Schema
// creation uses this: preparing statements against tables that do not exist
// yet fails on a fresh database.
func NewPlain(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// registerPreparedStatements registers all statements the API and ingestion
// layers use. Prepared statements eliminate parse overhead on every request.
// Leaderboard and window queries are built dynamically against a stat-column
// whitelist and are not prepared here.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// API: sanity counts
		"warehouse_counts": `SELECT
			(SELECT count(*) FROM teams),
			(SELECT count(*) FROM players),
			(SELECT count(*) FROM games),
			(SELECT count(*) FROM player_game_stats)`,

		// API: player lookup
		"player_search": `SELECT nba_player_id, full_name, nba_team_id
			FROM players
			WHERE lower(full_name) LIKE $1
			ORDER BY full_name ASC
			LIMIT $2`,
		"player_by_id": `SELECT nba_player_id, full_name, nba_team_id
			FROM players
			WHERE nba_player_id = $1`,

		// API: per-player recent game log (regular-season IDs only)
		"player_last_n": `SELECT
				s.nba_game_id, g.game_date, s.nba_team_id, s.minutes,
				s.pts, s.reb, s.ast, s.stl, s.blk, s.tov,
				s.fgm, s.fga, s.fg3m, s.fg3a, s.ftm, s.fta, s.plus_minus
			FROM player_game_stats s
			JOIN games g ON g.nba_game_id = s.nba_game_id
			WHERE s.nba_player_id = $1
			  AND g.season = $2
			  AND g.nba_game_id LIKE $3
			ORDER BY g.game_date DESC NULLS LAST
			LIMIT $4`,

		// API: standings snapshot
		"standings_by_season": `SELECT
				team_id, team_name, team_city, team_slug, conference,
				playoff_rank, wins, losses, win_pct, home, road, l10,
				streak, updated_at
			FROM standings_current
			WHERE season = $1
			ORDER BY conference ASC, playoff_rank ASC`,

		// Ingestion: resumable-mode skip set
		"loaded_game_ids": "SELECT nba_game_id FROM games WHERE season = $1",
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
