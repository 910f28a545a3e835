package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoopsight/hoopsight-data/internal/provider"
)

func teamRow(teamID int, name, tricode string, points int) provider.Row {
	return provider.Row{
		"TEAMID":      float64(teamID),
		"TEAMNAME":    name,
		"TEAMTRICODE": tricode,
		"POINTS":      float64(points),
	}
}

func playerRow(personID int, first, last string, teamID int) provider.Row {
	return provider.Row{
		"PERSONID":      float64(personID),
		"FIRSTNAME":     first,
		"FAMILYNAME":    last,
		"TEAMID":        float64(teamID),
		"MINUTES":       "34:12",
		"POINTS":        float64(28),
		"REBOUNDSTOTAL": float64(8),
		"ASSISTS":       float64(7),
		"PLUSMINUS":     "+12",
	}
}

func TestGameInfersHomeAwayFromRowOrder(t *testing.T) {
	t.Parallel()

	teams := []provider.Row{
		teamRow(1610612744, "Warriors", "GSW", 110), // first row: away
		teamRow(1610612747, "Lakers", "LAL", 118),   // second row: home
	}

	recs, err := Game("0022500001", "2025-26", "2025-11-02T00:00:00", nil, teams)
	require.NoError(t, err)

	require.NotNil(t, recs.Game.AwayTeamID)
	require.NotNil(t, recs.Game.HomeTeamID)
	assert.Equal(t, 1610612744, *recs.Game.AwayTeamID)
	assert.Equal(t, 1610612747, *recs.Game.HomeTeamID)

	require.NotNil(t, recs.Game.AwayScore)
	require.NotNil(t, recs.Game.HomeScore)
	assert.Equal(t, 110, *recs.Game.AwayScore)
	assert.Equal(t, 118, *recs.Game.HomeScore)

	assert.Equal(t, provider.StatusFinal, recs.Game.Status)
	assert.True(t, recs.Game.HomeAwayInferred)
}

func TestGameSingleTeamRowLeavesSidesNull(t *testing.T) {
	t.Parallel()

	recs, err := Game("0022500001", "2025-26", nil, nil,
		[]provider.Row{teamRow(1610612747, "Lakers", "LAL", 118)})
	require.NoError(t, err)

	assert.Nil(t, recs.Game.HomeTeamID)
	assert.Nil(t, recs.Game.AwayTeamID)
	assert.Nil(t, recs.Game.HomeScore)
	assert.Nil(t, recs.Game.AwayScore)
	assert.Empty(t, recs.Game.Status, "no scores means not finalized")
}

func TestGameMissingTeamIDIsSchemaBreak(t *testing.T) {
	t.Parallel()

	_, err := Game("0022500001", "2025-26", nil, nil,
		[]provider.Row{{"TEAMNAME": "Lakers"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "team identifier")
}

func TestGameMissingPlayerIDIsSchemaBreak(t *testing.T) {
	t.Parallel()

	teams := []provider.Row{
		teamRow(1610612744, "Warriors", "GSW", 110),
		teamRow(1610612747, "Lakers", "LAL", 118),
	}
	players := []provider.Row{{"FIRSTNAME": "LeBron", "FAMILYNAME": "James"}}

	_, err := Game("0022500001", "2025-26", nil, players, teams)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "player identifier")
}

func TestGameNormalizesPlayerLine(t *testing.T) {
	t.Parallel()

	teams := []provider.Row{
		teamRow(1610612744, "Warriors", "GSW", 110),
		teamRow(1610612747, "Lakers", "LAL", 118),
	}
	players := []provider.Row{playerRow(2544, "LeBron", "James", 1610612747)}

	recs, err := Game("0022500001", "2025-26", nil, players, teams)
	require.NoError(t, err)
	require.Len(t, recs.Players, 1)
	require.Len(t, recs.Lines, 1)

	assert.Equal(t, 2544, recs.Players[0].PlayerID)
	assert.Equal(t, "LeBron James", recs.Players[0].FullName)

	line := recs.Lines[0]
	assert.Equal(t, "0022500001", line.GameID)
	assert.Equal(t, "34:12", line.Minutes, "minutes stay raw text")
	require.NotNil(t, line.Pts)
	assert.Equal(t, 28, *line.Pts)
	require.NotNil(t, line.PlusMinus)
	assert.Equal(t, 12, *line.PlusMinus, `"+12" canonicalized to integer`)
}

func TestGameCombinedNameFallback(t *testing.T) {
	t.Parallel()

	teams := []provider.Row{
		teamRow(1610612744, "Warriors", "GSW", 110),
		teamRow(1610612747, "Lakers", "LAL", 118),
	}
	players := []provider.Row{{
		"PERSONID":   float64(201939),
		"PLAYERNAME": "Stephen Curry",
	}}

	recs, err := Game("0022500001", "2025-26", nil, players, teams)
	require.NoError(t, err)
	assert.Equal(t, "Stephen Curry", recs.Players[0].FullName)
}

func TestGameDegradedStatValuesBecomeNull(t *testing.T) {
	t.Parallel()

	teams := []provider.Row{
		teamRow(1610612744, "Warriors", "GSW", 110),
		teamRow(1610612747, "Lakers", "LAL", 118),
	}
	players := []provider.Row{{
		"PERSONID": float64(2544),
		"NAMEI":    "L. James",
		"POINTS":   "nan",
		"ASSISTS":  "",
		"STEALS":   "DNP",
	}}

	recs, err := Game("0022500001", "2025-26", nil, players, teams)
	require.NoError(t, err)

	line := recs.Lines[0]
	assert.Nil(t, line.Pts)
	assert.Nil(t, line.Ast)
	assert.Nil(t, line.Stl)
}

func TestParseGameDate(t *testing.T) {
	t.Parallel()

	native := time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC)
	got := ParseGameDate(native)
	require.NotNil(t, got)
	assert.True(t, got.Equal(native))

	got = ParseGameDate("2025-11-02T00:00:00")
	require.NotNil(t, got)
	assert.Equal(t, 2025, got.Year())
	assert.Equal(t, time.November, got.Month())

	got = ParseGameDate("2025-11-02")
	require.NotNil(t, got)
	assert.Equal(t, 2, got.Day())

	assert.Nil(t, ParseGameDate(nil))
	assert.Nil(t, ParseGameDate("NOV 02, 2025"))
	assert.Nil(t, ParseGameDate(float64(20251102)))
}
