package nbastats

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/hoopsight/hoopsight-data/internal/provider"
)

// dateParam is the date format the game-finder endpoint expects.
const dateParam = "01/02/2006"

// leagueNBA is the provider's league identifier for the NBA.
const leagueNBA = "00"

// FindGames returns the candidate games played between dateFrom and dateTo
// for a season and season type. Transient failures are retried with
// exponential backoff; anything else propagates immediately.
//
// The result may contain the same game ID twice (one row per participating
// team) — callers deduplicate.
func (c *Client) FindGames(ctx context.Context, dateFrom, dateTo time.Time, season, seasonType string) ([]provider.DiscoveredGame, error) {
	params := url.Values{
		"DateFrom":   {dateFrom.Format(dateParam)},
		"DateTo":     {dateTo.Format(dateParam)},
		"LeagueID":   {leagueNBA},
		"Season":     {season},
		"SeasonType": {seasonType},
	}

	resp, err := c.getWithBackoff(ctx, "/leaguegamefinder", params, discoveryMaxAttempts)
	if err != nil {
		return nil, fmt.Errorf("find games %s..%s: %w",
			dateFrom.Format(dateParam), dateTo.Format(dateParam), err)
	}

	rs := resp.namedResultSet("LeagueGameFinderResults", 0)
	if rs == nil {
		return nil, fmt.Errorf("find games: response carried no result sets")
	}

	games := make([]provider.DiscoveredGame, 0, len(rs.RowSet))
	for _, values := range rs.RowSet {
		row := provider.NewRow(rs.Headers, values)
		gameID := row.PickString("GAME_ID", "GAMEID")
		if gameID == "" {
			continue
		}
		games = append(games, provider.DiscoveredGame{
			GameID:  gameID,
			RawDate: row.Pick("GAME_DATE", "GAMEDATE", "GAME_DATE_EST"),
		})
	}
	return games, nil
}
