package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hoopsight/hoopsight-data/internal/normalize"
	"github.com/hoopsight/hoopsight-data/internal/provider"
)

// Store is the warehouse write side. Per-game writes are grouped into one
// transaction: no partial game is ever visible as committed.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a Store over a connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// LoadedGameIDs returns the game IDs already present for a season, used by
// resumable backfill runs to skip redundant work.
func (s *Store) LoadedGameIDs(ctx context.Context, season string) (map[string]struct{}, error) {
	rows, err := s.pool.Query(ctx, "loaded_game_ids", season)
	if err != nil {
		return nil, fmt.Errorf("load game ids for %s: %w", season, err)
	}
	defer rows.Close()

	loaded := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan game id: %w", err)
		}
		loaded[id] = struct{}{}
	}
	return loaded, rows.Err()
}

// IngestGame writes one game's full record bundle (teams, game, players,
// stat lines) atomically. On any error the transaction rolls back and the
// warehouse keeps no trace of the game.
func (s *Store) IngestGame(ctx context.Context, recs *normalize.GameRecords) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, t := range recs.Teams {
		if err := UpsertTeam(ctx, tx, t); err != nil {
			return fmt.Errorf("upsert team %d: %w", t.TeamID, err)
		}
	}
	if err := UpsertGame(ctx, tx, recs.Game); err != nil {
		return fmt.Errorf("upsert game %s: %w", recs.Game.GameID, err)
	}
	for _, p := range recs.Players {
		if err := UpsertPlayer(ctx, tx, p); err != nil {
			return fmt.Errorf("upsert player %d: %w", p.PlayerID, err)
		}
	}
	for _, line := range recs.Lines {
		if err := UpsertPlayerGameStats(ctx, tx, line); err != nil {
			return fmt.Errorf("upsert stat line %s/%d: %w", line.GameID, line.PlayerID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit game %s: %w", recs.Game.GameID, err)
	}
	return nil
}

// ReplaceStandings upserts the full standings snapshot for a season in one
// transaction, stamping every row with the same refresh time.
func (s *Store) ReplaceStandings(ctx context.Context, standings []provider.StandingRow) (int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()
	upserted := 0
	for _, r := range standings {
		if err := UpsertStanding(ctx, tx, r, now); err != nil {
			return 0, fmt.Errorf("upsert standing %s/%d: %w", r.Season, r.TeamID, err)
		}
		upserted++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit standings: %w", err)
	}
	return upserted, nil
}
