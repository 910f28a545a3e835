// Package query computes analytical reads directly against the warehouse:
// game logs, leaderboards, rolling windows, standings. It never talks to the
// upstream provider.
//
// Shooting percentages are always ratio-of-totals — sum(made)/sum(attempted)
// across the window — never a mean of per-game percentages, which is biased
// toward small-sample games. Policy, applied uniformly: a zero-attempt
// denominator yields a null percentage, and leaderboard attempt floors keep
// the null case out of leader output.
package query

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// MinutesToFloat converts a raw "MM:SS" (or "M:SS") minutes string to
// fractional minutes: "34:12" → 34.2. Bare numeric strings pass through.
// Missing or unparseable values return nil and are excluded from averages,
// never treated as zero.
func MinutesToFloat(m string) *float64 {
	s := strings.TrimSpace(m)
	if s == "" {
		return nil
	}
	if mm, ss, ok := strings.Cut(s, ":"); ok {
		minutes, err1 := strconv.ParseFloat(mm, 64)
		seconds, err2 := strconv.ParseFloat(ss, 64)
		if err1 != nil || err2 != nil {
			return nil
		}
		v := minutes + seconds/60.0
		return &v
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// safeAvg averages the non-nil values, rounded to 3 places. All-nil input
// yields nil, not zero.
func safeAvg(vals []*int) *float64 {
	sum, n := 0, 0
	for _, v := range vals {
		if v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := roundTo(float64(sum)/float64(n), 3)
	return &avg
}

// safeAvgFloats is safeAvg over already-fractional values (minutes).
func safeAvgFloats(vals []*float64) *float64 {
	sum, n := 0.0, 0
	for _, v := range vals {
		if v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := roundTo(sum/float64(n), 3)
	return &avg
}

// ratio returns made/attempted rounded to places, or nil when attempted is
// zero.
func ratio(made, attempted int, places int) *float64 {
	if attempted == 0 {
		return nil
	}
	v := roundTo(float64(made)/float64(attempted), places)
	return &v
}

func roundTo(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

func orZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// --------------------------------------------------------------------------
// Leaderboard computation
// --------------------------------------------------------------------------

// Leader is one leaderboard entry. Value is a per-game average for counting
// stats and a 0..1 ratio for shooting categories.
type Leader struct {
	PlayerID         int     `json:"player_id"`
	PlayerName       string  `json:"player_name"`
	TeamAbbreviation *string `json:"team_abbreviation"`
	GP               int     `json:"gp"`
	Value            float64 `json:"value"`
	Total            *int    `json:"total,omitempty"`
	Made             *int    `json:"made,omitempty"`
	Attempted        *int    `json:"attempted,omitempty"`
}

// totalsRow is one player's season aggregate for a counting stat.
type totalsRow struct {
	PlayerID         int
	PlayerName       string
	TeamAbbreviation *string
	GP               int
	Total            *int
}

// computeAverageLeaders turns per-player totals into a per-game-average
// leaderboard. Players under the minimum games-played threshold never
// appear, whatever their value.
func computeAverageLeaders(rows []totalsRow, minGP, limit int) []Leader {
	leaders := make([]Leader, 0, len(rows))
	for _, r := range rows {
		if r.GP < minGP || r.GP == 0 {
			continue
		}
		total := orZero(r.Total)
		leaders = append(leaders, Leader{
			PlayerID:         r.PlayerID,
			PlayerName:       r.PlayerName,
			TeamAbbreviation: r.TeamAbbreviation,
			GP:               r.GP,
			Value:            roundTo(float64(total)/float64(r.GP), 2),
			Total:            &total,
		})
	}
	sortLeaders(leaders)
	return truncateLeaders(leaders, limit)
}

// shootingRow is one player's season made/attempted aggregate.
type shootingRow struct {
	PlayerID         int
	PlayerName       string
	TeamAbbreviation *string
	GP               int
	Made             *int
	Attempted        *int
}

// computeShootingLeaders builds a ratio-of-totals percentage leaderboard.
// The attempts floor guards against tiny samples and makes the zero-attempt
// (null percentage) case unreachable.
func computeShootingLeaders(rows []shootingRow, minAttempts, minGP, limit int) []Leader {
	leaders := make([]Leader, 0, len(rows))
	for _, r := range rows {
		made, attempted := orZero(r.Made), orZero(r.Attempted)
		if r.GP < minGP || attempted < minAttempts {
			continue
		}
		pct := ratio(made, attempted, 4)
		if pct == nil {
			continue
		}
		leaders = append(leaders, Leader{
			PlayerID:         r.PlayerID,
			PlayerName:       r.PlayerName,
			TeamAbbreviation: r.TeamAbbreviation,
			GP:               r.GP,
			Value:            *pct,
			Made:             &made,
			Attempted:        &attempted,
		})
	}
	sortLeaders(leaders)
	return truncateLeaders(leaders, limit)
}

// TrendingLeader compares a player's last-N scoring window against their
// season baseline. Delta is recent minus season points per game.
type TrendingLeader struct {
	PlayerID         int     `json:"player_id"`
	PlayerName       string  `json:"player_name"`
	TeamAbbreviation *string `json:"team_abbreviation"`
	GP               int     `json:"gp"`
	SeasonPPG        float64 `json:"season_ppg"`
	RecentPPG        float64 `json:"recent_ppg"`
	Delta            float64 `json:"delta"`
}

// trendingRow is one player's season-and-window aggregate.
type trendingRow struct {
	PlayerID         int
	PlayerName       string
	TeamAbbreviation *string
	GP               int
	SeasonPts        *int
	RecentGP         int
	RecentPts        *int
}

// computeTrending requires both the season minimum and a full window of
// exactly `window` recent games before a delta is computed: a player with
// fewer games is excluded entirely, never padded.
func computeTrending(rows []trendingRow, window, minGP, limit int) []TrendingLeader {
	leaders := make([]TrendingLeader, 0, len(rows))
	for _, r := range rows {
		if r.GP < minGP || r.RecentGP < window {
			continue
		}
		seasonPPG := roundTo(float64(orZero(r.SeasonPts))/float64(r.GP), 2)
		recentPPG := roundTo(float64(orZero(r.RecentPts))/float64(r.RecentGP), 2)
		leaders = append(leaders, TrendingLeader{
			PlayerID:         r.PlayerID,
			PlayerName:       r.PlayerName,
			TeamAbbreviation: r.TeamAbbreviation,
			GP:               r.GP,
			SeasonPPG:        seasonPPG,
			RecentPPG:        recentPPG,
			Delta:            roundTo(recentPPG-seasonPPG, 2),
		})
	}
	sort.Slice(leaders, func(i, j int) bool {
		if leaders[i].Delta != leaders[j].Delta {
			return leaders[i].Delta > leaders[j].Delta
		}
		return leaders[i].PlayerID < leaders[j].PlayerID
	})
	if limit > 0 && len(leaders) > limit {
		leaders = leaders[:limit]
	}
	return leaders
}

func sortLeaders(leaders []Leader) {
	sort.Slice(leaders, func(i, j int) bool {
		if leaders[i].Value != leaders[j].Value {
			return leaders[i].Value > leaders[j].Value
		}
		return leaders[i].PlayerID < leaders[j].PlayerID
	})
}

func truncateLeaders(leaders []Leader, limit int) []Leader {
	if limit > 0 && len(leaders) > limit {
		return leaders[:limit]
	}
	return leaders
}
