package ask

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchLeaders(t *testing.T) {
	t.Parallel()

	cases := []struct {
		question string
		category string
	}{
		{"Who leads the league in points?", "pts"},
		{"who is leading in rebounds", "reb"},
		{"Who's the best at assists?", "ast"},
		{"who are the top in steals", "stl"},
		{"Who leads in three point percentage?", "fg3_pct"},
		{"who is the best at free throw percentage", "ft_pct"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.question, func(t *testing.T) {
			t.Parallel()
			in, params, ok := match(tc.question)
			require.True(t, ok)
			assert.Equal(t, "leaders", in.name)
			assert.Equal(t, tc.category, params.Category)
		})
	}
}

func TestMatchTrending(t *testing.T) {
	t.Parallel()

	in, params, ok := match("Which players are heating up?")
	require.True(t, ok)
	assert.Equal(t, "trending", in.name)
	assert.Equal(t, defaultWindow, params.Window)

	in, _, ok = match("who is trending this week")
	require.True(t, ok)
	assert.Equal(t, "trending", in.name)
}

func TestMatchStandings(t *testing.T) {
	t.Parallel()

	in, _, ok := match("What do the standings look like?")
	require.True(t, ok)
	assert.Equal(t, "standings", in.name)

	in, _, ok = match("who has the best record in the west")
	require.True(t, ok)
	assert.Equal(t, "standings", in.name)
}

func TestMatchPlayerWindow(t *testing.T) {
	t.Parallel()

	in, params, ok := match("How has LeBron James been playing over the last 10 games?")
	require.True(t, ok)
	assert.Equal(t, "player_window", in.name)
	assert.Equal(t, "LeBron James", params.PlayerName)
	assert.Equal(t, 10, params.Window)

	// No explicit window: default.
	in, params, ok = match("how is Stephen Curry doing")
	require.True(t, ok)
	assert.Equal(t, "player_window", in.name)
	assert.Equal(t, "Stephen Curry", params.PlayerName)
	assert.Equal(t, defaultWindow, params.Window)
}

func TestMatchPlayerLastN(t *testing.T) {
	t.Parallel()

	in, params, ok := match("Nikola Jokic over the last 7 games")
	require.True(t, ok)
	assert.Equal(t, "player_last_n", in.name)
	assert.Equal(t, "Nikola Jokic", params.PlayerName)
	assert.Equal(t, 7, params.Window)
}

func TestMatchNoIntent(t *testing.T) {
	t.Parallel()

	_, _, ok := match("what is the meaning of life")
	assert.False(t, ok)
}

func TestNormalizeCategory(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "pts", normalizeCategory("points"))
	assert.Equal(t, "pts", normalizeCategory(" Scoring? "))
	assert.Equal(t, "reb", normalizeCategory("rebounding"))
	// Longest alias wins: "three point percentage" contains "points" too.
	assert.Equal(t, "fg3_pct", normalizeCategory("three point percentage"))
	assert.Equal(t, "", normalizeCategory("vibes"))
}

func TestParseWindow(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 7, parseWindow("7"))
	assert.Equal(t, defaultWindow, parseWindow(""))
	assert.Equal(t, defaultWindow, parseWindow("0"))
	assert.Equal(t, maxWindow, parseWindow("99"))
}
