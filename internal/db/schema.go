package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaDDL creates the warehouse tables. Uniqueness is enforced here, at the
// storage layer, so repeated or concurrent ingestion can never produce
// duplicate rows regardless of application-level checks.
//
// This is intentionally CREATE IF NOT EXISTS, not a migration system.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS teams (
		id            SERIAL PRIMARY KEY,
		nba_team_id   INTEGER NOT NULL UNIQUE,
		name          TEXT,
		abbreviation  TEXT,
		city          TEXT,
		conference    TEXT,
		division      TEXT,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS players (
		id            SERIAL PRIMARY KEY,
		nba_player_id INTEGER NOT NULL UNIQUE,
		full_name     TEXT,
		nba_team_id   INTEGER,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS games (
		id                 SERIAL PRIMARY KEY,
		nba_game_id        TEXT NOT NULL UNIQUE,
		game_date          TIMESTAMPTZ,
		season             TEXT,
		home_team_id       INTEGER,
		away_team_id       INTEGER,
		home_score         INTEGER,
		away_score         INTEGER,
		status             TEXT,
		home_away_inferred BOOLEAN NOT NULL DEFAULT TRUE,
		created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS player_game_stats (
		id            SERIAL PRIMARY KEY,
		nba_game_id   TEXT NOT NULL,
		nba_player_id INTEGER NOT NULL,
		nba_team_id   INTEGER,
		minutes       TEXT,
		pts           INTEGER,
		reb           INTEGER,
		ast           INTEGER,
		stl           INTEGER,
		blk           INTEGER,
		tov           INTEGER,
		fgm           INTEGER,
		fga           INTEGER,
		fg3m          INTEGER,
		fg3a          INTEGER,
		ftm           INTEGER,
		fta           INTEGER,
		plus_minus    INTEGER,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT uq_player_game UNIQUE (nba_game_id, nba_player_id)
	)`,

	`CREATE TABLE IF NOT EXISTS standings_current (
		id           SERIAL PRIMARY KEY,
		season       TEXT NOT NULL,
		team_id      INTEGER NOT NULL,
		team_name    TEXT,
		team_city    TEXT,
		team_slug    TEXT,
		conference   TEXT,
		playoff_rank INTEGER,
		wins         INTEGER,
		losses       INTEGER,
		win_pct      DOUBLE PRECISION,
		home         TEXT,
		road         TEXT,
		l10          TEXT,
		streak       TEXT,
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT uq_standings_current_season_team UNIQUE (season, team_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_games_season ON games (season)`,
	`CREATE INDEX IF NOT EXISTS idx_games_game_date ON games (game_date)`,
	`CREATE INDEX IF NOT EXISTS idx_pgs_player ON player_game_stats (nba_player_id)`,
	`CREATE INDEX IF NOT EXISTS idx_pgs_game ON player_game_stats (nba_game_id)`,
	`CREATE INDEX IF NOT EXISTS idx_standings_season ON standings_current (season)`,
}

// EnsureSchema creates all warehouse tables and indexes if they do not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, ddl := range schemaDDL {
		if _, err := pool.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("apply schema statement: %w", err)
		}
	}
	return nil
}
