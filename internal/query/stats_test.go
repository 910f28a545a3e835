package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinutesToFloat(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want *float64
	}{
		{"34:12", floatPtr(34.2)},
		{"7:00", floatPtr(7.0)},
		{"0:30", floatPtr(0.5)},
		{"36", floatPtr(36.0)},
		{"", nil},
		{"  ", nil},
		{"DNP", nil},
		{"ab:cd", nil},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()
			got := MinutesToFloat(tc.in)
			if tc.want == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.InDelta(t, *tc.want, *got, 1e-9)
			}
		})
	}
}

func TestSafeAvgIgnoresNulls(t *testing.T) {
	t.Parallel()

	got := safeAvg([]*int{intPtr(10), nil, intPtr(20)})
	require.NotNil(t, got)
	assert.InDelta(t, 15.0, *got, 1e-9, "nil entries excluded, not zero-filled")

	assert.Nil(t, safeAvg([]*int{nil, nil}))
	assert.Nil(t, safeAvg(nil))
}

func TestRatioOfTotalsNotMeanOfRatios(t *testing.T) {
	t.Parallel()

	// Game 1: 3/5, game 2: 0/2. Mean of per-game percentages would be
	// (0.6 + 0.0) / 2 = 0.30; the correct window value is 3/7.
	got := ratio(3+0, 5+2, 4)
	require.NotNil(t, got)
	assert.InDelta(t, 0.4286, *got, 1e-9)
}

func TestRatioZeroDenominatorIsNull(t *testing.T) {
	t.Parallel()

	assert.Nil(t, ratio(0, 0, 4))
	assert.Nil(t, ratio(5, 0, 4))
}

func TestComputeAveragesRatioOfTotals(t *testing.T) {
	t.Parallel()

	games := []GameLogEntry{
		{Minutes: strPtr("30:00"), Pts: intPtr(20), FGM: intPtr(3), FGA: intPtr(5), FTM: intPtr(0), FTA: intPtr(0)},
		{Minutes: strPtr("24:30"), Pts: intPtr(10), FGM: intPtr(0), FGA: intPtr(2), FTM: intPtr(0), FTA: intPtr(0)},
	}

	avgs := computeAverages(games)

	require.NotNil(t, avgs.Pts)
	assert.InDelta(t, 15.0, *avgs.Pts, 1e-9)

	require.NotNil(t, avgs.Minutes)
	assert.InDelta(t, 27.25, *avgs.Minutes, 1e-9)

	require.NotNil(t, avgs.FGPct)
	assert.InDelta(t, 0.4286, *avgs.FGPct, 1e-9, "3/7, never mean of 0.6 and 0.0")

	assert.Nil(t, avgs.FTPct, "zero attempts in the window yields null")
}

func TestComputeAveragesEmptyWindow(t *testing.T) {
	t.Parallel()

	avgs := computeAverages(nil)
	assert.Nil(t, avgs.Pts)
	assert.Nil(t, avgs.Minutes)
	assert.Nil(t, avgs.FGPct)
}

func TestComputeAverageLeaders(t *testing.T) {
	t.Parallel()

	rows := []totalsRow{
		{PlayerID: 1, PlayerName: "High Volume", GP: 20, Total: intPtr(600)},  // 30.0
		{PlayerID: 2, PlayerName: "Hot Streak", GP: 3, Total: intPtr(120)},    // 40.0 but under floor
		{PlayerID: 3, PlayerName: "Steady", GP: 15, Total: intPtr(375)},       // 25.0
		{PlayerID: 4, PlayerName: "Sparse Data", GP: 12, Total: nil},          // 0.0
	}

	leaders := computeAverageLeaders(rows, 10, 10)

	require.Len(t, leaders, 3, "under-floor player excluded regardless of value")
	assert.Equal(t, 1, leaders[0].PlayerID)
	assert.InDelta(t, 30.0, leaders[0].Value, 1e-9)
	assert.Equal(t, 3, leaders[1].PlayerID)
	assert.Equal(t, 4, leaders[2].PlayerID)
	assert.InDelta(t, 0.0, leaders[2].Value, 1e-9, "null totals treated as zero, not dropped")
}

func TestComputeAverageLeadersLimit(t *testing.T) {
	t.Parallel()

	rows := []totalsRow{
		{PlayerID: 1, GP: 10, Total: intPtr(100)},
		{PlayerID: 2, GP: 10, Total: intPtr(200)},
		{PlayerID: 3, GP: 10, Total: intPtr(300)},
	}
	leaders := computeAverageLeaders(rows, 1, 2)
	require.Len(t, leaders, 2)
	assert.Equal(t, 3, leaders[0].PlayerID)
	assert.Equal(t, 2, leaders[1].PlayerID)
}

func TestComputeShootingLeaders(t *testing.T) {
	t.Parallel()

	rows := []shootingRow{
		{PlayerID: 1, PlayerName: "Efficient", GP: 20, Made: intPtr(150), Attempted: intPtr(250)},  // 0.60
		{PlayerID: 2, PlayerName: "Tiny Sample", GP: 20, Made: intPtr(9), Attempted: intPtr(10)},   // 0.90 but under attempts floor
		{PlayerID: 3, PlayerName: "Volume", GP: 20, Made: intPtr(200), Attempted: intPtr(400)},     // 0.50
		{PlayerID: 4, PlayerName: "Never Shoots", GP: 20, Made: intPtr(0), Attempted: intPtr(0)},   // null pct, excluded
	}

	leaders := computeShootingLeaders(rows, 100, 10, 10)

	require.Len(t, leaders, 2)
	assert.Equal(t, 1, leaders[0].PlayerID)
	assert.InDelta(t, 0.6, leaders[0].Value, 1e-9)
	require.NotNil(t, leaders[0].Made)
	assert.Equal(t, 150, *leaders[0].Made)
	assert.Equal(t, 3, leaders[1].PlayerID)
}

func TestComputeTrendingRequiresFullWindow(t *testing.T) {
	t.Parallel()

	rows := []trendingRow{
		// Season 20 ppg, recent 30 ppg: +10.
		{PlayerID: 1, PlayerName: "Riser", GP: 20, SeasonPts: intPtr(400), RecentGP: 5, RecentPts: intPtr(150)},
		// Only 3 recent games: excluded, never padded.
		{PlayerID: 2, PlayerName: "Short Window", GP: 20, SeasonPts: intPtr(400), RecentGP: 3, RecentPts: intPtr(150)},
		// Under season floor.
		{PlayerID: 3, PlayerName: "Rookie", GP: 5, SeasonPts: intPtr(150), RecentGP: 5, RecentPts: intPtr(150)},
		// Declining: negative delta still ranks, just lower.
		{PlayerID: 4, PlayerName: "Fader", GP: 20, SeasonPts: intPtr(400), RecentGP: 5, RecentPts: intPtr(50)},
	}

	leaders := computeTrending(rows, 5, 10, 10)

	require.Len(t, leaders, 2)
	assert.Equal(t, 1, leaders[0].PlayerID)
	assert.InDelta(t, 20.0, leaders[0].SeasonPPG, 1e-9)
	assert.InDelta(t, 30.0, leaders[0].RecentPPG, 1e-9)
	assert.InDelta(t, 10.0, leaders[0].Delta, 1e-9)

	assert.Equal(t, 4, leaders[1].PlayerID)
	assert.InDelta(t, -10.0, leaders[1].Delta, 1e-9)
}

func intPtr(n int) *int           { return &n }
func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string     { return &s }
