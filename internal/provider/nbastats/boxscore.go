package nbastats

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/hoopsight/hoopsight-data/internal/provider"
)

const (
	boxscoreRetries    = 1
	boxscoreRetryDelay = time.Second
)

// FetchBoxScore returns the per-player and per-team record sets for a game.
//
// Three outcomes are distinguished:
//   - success: both row sets present
//   - provider.ErrUnavailable: the box score is not published yet (empty or
//     contentless payload) — callers skip and continue
//   - hard failure: network/parse error other than emptiness, retried once
//     with a short fixed delay, then propagated
func (c *Client) FetchBoxScore(ctx context.Context, gameID string) (playerRows, teamRows []provider.Row, err error) {
	params := url.Values{
		"GameID":      {gameID},
		"StartPeriod": {"0"},
		"EndPeriod":   {"14"},
	}

	var resp *statsResponse
	for attempt := 0; ; attempt++ {
		resp, err = c.get(ctx, "/boxscoretraditionalv3", params)
		if err == nil {
			break
		}
		if attempt >= boxscoreRetries {
			return nil, nil, fmt.Errorf("fetch box score %s: %w", gameID, err)
		}
		c.logger.Warn("box score fetch failed, retrying once",
			"game_id", gameID, "error", err)
		select {
		case <-time.After(boxscoreRetryDelay):
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		}
	}

	players := resp.namedResultSet("PlayerStats", 0)
	teams := resp.namedResultSet("TeamStats", 1)
	if players == nil || teams == nil || len(players.RowSet) == 0 || len(teams.RowSet) == 0 {
		// Not published yet. The provider serves empty envelopes for games
		// that have not finished or have not been scored.
		return nil, nil, provider.ErrUnavailable
	}

	playerRows = rowsFromResultSet(players)
	teamRows = rowsFromResultSet(teams)
	return playerRows, teamRows, nil
}

func rowsFromResultSet(rs *resultSet) []provider.Row {
	rows := make([]provider.Row, 0, len(rs.RowSet))
	for _, values := range rs.RowSet {
		rows = append(rows, provider.NewRow(rs.Headers, values))
	}
	return rows
}
