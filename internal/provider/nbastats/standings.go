package nbastats

import (
	"context"
	"fmt"
	"net/url"

	"github.com/hoopsight/hoopsight-data/internal/provider"
)

// FetchStandings returns the league standings rows for a season. Uses the
// same backoff policy as game discovery since both feed whole-run refreshes.
func (c *Client) FetchStandings(ctx context.Context, season, seasonType string) ([]provider.Row, error) {
	params := url.Values{
		"LeagueID":   {leagueNBA},
		"Season":     {season},
		"SeasonType": {seasonType},
	}

	resp, err := c.getWithBackoff(ctx, "/leaguestandingsv3", params, discoveryMaxAttempts)
	if err != nil {
		return nil, fmt.Errorf("fetch standings %s: %w", season, err)
	}

	rs := resp.namedResultSet("Standings", 0)
	if rs == nil {
		return nil, fmt.Errorf("fetch standings: response carried no result sets")
	}
	return rowsFromResultSet(rs), nil
}
