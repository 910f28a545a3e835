package normalize

import (
	"github.com/hoopsight/hoopsight-data/internal/provider"
)

// Standings converts raw standings rows into canonical snapshot rows for a
// season. Rows without a team identifier are dropped — the snapshot is
// best-effort and refreshed wholesale on the next run.
func Standings(season string, rows []provider.Row) []provider.StandingRow {
	out := make([]provider.StandingRow, 0, len(rows))
	for _, r := range rows {
		teamID := provider.ToInt(r.Pick("TEAMID", "TEAM_ID"))
		if teamID == nil {
			continue
		}
		out = append(out, provider.StandingRow{
			Season:      season,
			TeamID:      *teamID,
			TeamName:    r.PickString("TEAMNAME", "TEAM_NAME"),
			TeamCity:    r.PickString("TEAMCITY", "TEAM_CITY"),
			TeamSlug:    r.PickString("TEAMSLUG", "TEAM_SLUG"),
			Conference:  r.PickString("CONFERENCE"),
			PlayoffRank: provider.ToInt(r.Pick("PLAYOFFRANK", "PLAYOFF_RANK")),
			Wins:        provider.ToInt(r.Pick("WINS", "W")),
			Losses:      provider.ToInt(r.Pick("LOSSES", "L")),
			WinPct:      provider.ToFloat(r.Pick("WINPCT", "WIN_PCT", "W_PCT")),
			Home:        r.PickString("HOME"),
			Road:        r.PickString("ROAD"),
			L10:         r.PickString("L10"),
			Streak:      r.PickString("STRCURRENTSTREAK", "CURRENTSTREAK"),
		})
	}
	return out
}
