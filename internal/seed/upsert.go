// Package seed applies canonical records to the warehouse under unique-key
// conflict resolution: insert if absent, else overwrite every non-key column
// with the new values. Last write always wins, and re-applying identical
// input is a no-op — ingestion stays idempotent.
package seed

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hoopsight/hoopsight-data/internal/provider"
)

// Querier is the subset of pgx operations the upserts need. Both
// *pgxpool.Pool and pgx.Tx satisfy it, so the same upsert code runs inside
// or outside a per-game transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UpsertTeam writes a canonical team keyed by nba_team_id.
func UpsertTeam(ctx context.Context, q Querier, t provider.Team) error {
	_, err := q.Exec(ctx, `
		INSERT INTO teams (nba_team_id, name, city, abbreviation, conference, division)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (nba_team_id) DO UPDATE SET
			name = EXCLUDED.name,
			city = EXCLUDED.city,
			abbreviation = EXCLUDED.abbreviation,
			conference = EXCLUDED.conference,
			division = EXCLUDED.division`,
		t.TeamID, nilEmpty(t.Name), nilEmpty(t.City), nilEmpty(t.Abbreviation),
		nilEmpty(t.Conference), nilEmpty(t.Division),
	)
	return err
}

// UpsertPlayer writes a canonical player keyed by nba_player_id.
func UpsertPlayer(ctx context.Context, q Querier, p provider.Player) error {
	_, err := q.Exec(ctx, `
		INSERT INTO players (nba_player_id, full_name, nba_team_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (nba_player_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			nba_team_id = EXCLUDED.nba_team_id`,
		p.PlayerID, nilEmpty(p.FullName), p.TeamID,
	)
	return err
}

// UpsertGame writes a canonical game keyed by nba_game_id.
func UpsertGame(ctx context.Context, q Querier, g provider.Game) error {
	_, err := q.Exec(ctx, `
		INSERT INTO games (
			nba_game_id, game_date, season, home_team_id, away_team_id,
			home_score, away_score, status, home_away_inferred
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (nba_game_id) DO UPDATE SET
			game_date = EXCLUDED.game_date,
			season = EXCLUDED.season,
			home_team_id = EXCLUDED.home_team_id,
			away_team_id = EXCLUDED.away_team_id,
			home_score = EXCLUDED.home_score,
			away_score = EXCLUDED.away_score,
			status = EXCLUDED.status,
			home_away_inferred = EXCLUDED.home_away_inferred`,
		g.GameID, g.GameDate, nilEmpty(g.Season), g.HomeTeamID, g.AwayTeamID,
		g.HomeScore, g.AwayScore, nilEmpty(g.Status), g.HomeAwayInferred,
	)
	return err
}

// UpsertPlayerGameStats writes one stat line keyed by (nba_game_id,
// nba_player_id) — the uq_player_game constraint guarantees at most one row
// per player per game no matter how often ingestion repeats.
func UpsertPlayerGameStats(ctx context.Context, q Querier, s provider.PlayerGameStats) error {
	_, err := q.Exec(ctx, `
		INSERT INTO player_game_stats (
			nba_game_id, nba_player_id, nba_team_id, minutes,
			pts, reb, ast, stl, blk, tov,
			fgm, fga, fg3m, fg3a, ftm, fta, plus_minus
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
		ON CONFLICT ON CONSTRAINT uq_player_game DO UPDATE SET
			nba_team_id = EXCLUDED.nba_team_id,
			minutes = EXCLUDED.minutes,
			pts = EXCLUDED.pts,
			reb = EXCLUDED.reb,
			ast = EXCLUDED.ast,
			stl = EXCLUDED.stl,
			blk = EXCLUDED.blk,
			tov = EXCLUDED.tov,
			fgm = EXCLUDED.fgm,
			fga = EXCLUDED.fga,
			fg3m = EXCLUDED.fg3m,
			fg3a = EXCLUDED.fg3a,
			ftm = EXCLUDED.ftm,
			fta = EXCLUDED.fta,
			plus_minus = EXCLUDED.plus_minus`,
		s.GameID, s.PlayerID, s.TeamID, nilEmpty(s.Minutes),
		s.Pts, s.Reb, s.Ast, s.Stl, s.Blk, s.Tov,
		s.FGM, s.FGA, s.FG3M, s.FG3A, s.FTM, s.FTA, s.PlusMinus,
	)
	return err
}

// UpsertStanding writes one standings snapshot row keyed by (season,
// team_id), overwritten wholesale on each refresh.
func UpsertStanding(ctx context.Context, q Querier, r provider.StandingRow, updatedAt time.Time) error {
	_, err := q.Exec(ctx, `
		INSERT INTO standings_current (
			season, team_id, team_name, team_city, team_slug, conference,
			playoff_rank, wins, losses, win_pct, home, road, l10, streak,
			updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		ON CONFLICT ON CONSTRAINT uq_standings_current_season_team DO UPDATE SET
			team_name = EXCLUDED.team_name,
			team_city = EXCLUDED.team_city,
			team_slug = EXCLUDED.team_slug,
			conference = EXCLUDED.conference,
			playoff_rank = EXCLUDED.playoff_rank,
			wins = EXCLUDED.wins,
			losses = EXCLUDED.losses,
			win_pct = EXCLUDED.win_pct,
			home = EXCLUDED.home,
			road = EXCLUDED.road,
			l10 = EXCLUDED.l10,
			streak = EXCLUDED.streak,
			updated_at = EXCLUDED.updated_at`,
		r.Season, r.TeamID, nilEmpty(r.TeamName), nilEmpty(r.TeamCity),
		nilEmpty(r.TeamSlug), nilEmpty(r.Conference), r.PlayoffRank,
		r.Wins, r.Losses, r.WinPct, nilEmpty(r.Home), nilEmpty(r.Road),
		nilEmpty(r.L10), nilEmpty(r.Streak), updatedAt,
	)
	return err
}

// nilEmpty returns nil for empty strings (maps to SQL NULL).
func nilEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
