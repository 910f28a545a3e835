// Package normalize converts one upstream game's raw row sets into canonical
// warehouse records. Data-quality problems (unparseable dates, non-numeric
// stat values) degrade to null; a missing identifier is a schema break and
// fails the whole game.
package normalize

import (
	"fmt"
	"time"

	"github.com/hoopsight/hoopsight-data/internal/provider"
)

// GameRecords is everything one box score yields: the game row, both team
// rows, and one player + stat line per participant. The seed layer writes
// the whole bundle inside a single transaction.
type GameRecords struct {
	Game    provider.Game
	Teams   []provider.Team
	Players []provider.Player
	Lines   []provider.PlayerGameStats
}

// Game builds canonical records for a single game from its raw box-score row
// sets. rawDate is the date value the discovery endpoint attached to this
// game ID (may be nil, a timestamp, or an ISO-8601 string).
func Game(gameID, season string, rawDate any, playerRows, teamRows []provider.Row) (*GameRecords, error) {
	teams, err := normalizeTeams(teamRows)
	if err != nil {
		return nil, fmt.Errorf("game %s: %w", gameID, err)
	}

	homeID, awayID := inferHomeAway(teams)
	homeScore := scoreFor(teams, homeID)
	awayScore := scoreFor(teams, awayID)

	status := ""
	if homeScore != nil && awayScore != nil {
		status = provider.StatusFinal
	}

	recs := &GameRecords{
		Game: provider.Game{
			GameID:           gameID,
			GameDate:         ParseGameDate(rawDate),
			Season:           season,
			HomeTeamID:       homeID,
			AwayTeamID:       awayID,
			HomeScore:        homeScore,
			AwayScore:        awayScore,
			Status:           status,
			HomeAwayInferred: true,
		},
		Teams: teams,
	}

	for _, p := range playerRows {
		player, line, err := normalizePlayerRow(gameID, p)
		if err != nil {
			return nil, fmt.Errorf("game %s: %w", gameID, err)
		}
		recs.Players = append(recs.Players, player)
		recs.Lines = append(recs.Lines, line)
	}

	return recs, nil
}

// normalizeTeams converts team rows to canonical teams. A row without a team
// identifier under any known alias is a schema break, not missing data.
func normalizeTeams(teamRows []provider.Row) ([]provider.Team, error) {
	teams := make([]provider.Team, 0, len(teamRows))
	for _, t := range teamRows {
		teamID := provider.ToInt(t.Pick("TEAMID", "TEAM_ID", "TEAMIDHOME", "TEAMIDAWAY"))
		if teamID == nil {
			return nil, fmt.Errorf("team row carries no team identifier: %w", errSchemaBreak)
		}
		teams = append(teams, provider.Team{
			TeamID:       *teamID,
			Name:         t.PickString("TEAMNAME", "TEAM_NAME"),
			City:         t.PickString("TEAMCITY", "TEAM_CITY"),
			Abbreviation: t.PickString("TEAMTRICODE", "TEAM_ABBREVIATION", "TEAM_ABBR"),
			Points:       provider.ToInt(t.Pick("POINTS", "PTS")),
		})
	}
	return teams, nil
}

var errSchemaBreak = fmt.Errorf("schema break")

// inferHomeAway assumes the provider returns the two team rows in
// (away, home) order. The box-score endpoint does not label sides, so this
// is a documented approximation, not a guarantee — the resulting game row
// carries HomeAwayInferred to flag it.
func inferHomeAway(teams []provider.Team) (homeID, awayID *int) {
	if len(teams) < 2 {
		return nil, nil
	}
	away := teams[0].TeamID
	home := teams[1].TeamID
	return &home, &away
}

// scoreFor returns the box-score points of the team with the given ID, or
// nil when the ID is nil or matches no team row.
func scoreFor(teams []provider.Team, teamID *int) *int {
	if teamID == nil {
		return nil
	}
	for _, t := range teams {
		if t.TeamID == *teamID {
			return t.Points
		}
	}
	return nil
}

// ParseGameDate parses the discovery endpoint's date value. Native
// timestamps pass through; strings are tried against the ISO-8601 layouts
// the provider has been seen to use. Anything else degrades to nil.
func ParseGameDate(raw any) *time.Time {
	switch v := raw.(type) {
	case nil:
		return nil
	case time.Time:
		return &v
	case string:
		for _, layout := range []string{
			time.RFC3339,
			"2006-01-02T15:04:05",
			"2006-01-02",
		} {
			if t, err := time.Parse(layout, v); err == nil {
				return &t
			}
		}
		return nil
	default:
		return nil
	}
}

// normalizePlayerRow builds the canonical player and stat line for one
// box-score player row.
func normalizePlayerRow(gameID string, p provider.Row) (provider.Player, provider.PlayerGameStats, error) {
	playerID := provider.ToInt(p.Pick("PERSONID", "PLAYERID", "PLAYER_ID"))
	if playerID == nil {
		return provider.Player{}, provider.PlayerGameStats{},
			fmt.Errorf("player row carries no player identifier: %w", errSchemaBreak)
	}

	teamID := provider.ToInt(p.Pick("TEAMID", "TEAM_ID"))

	// Display name: first+last when both are present, else the provider's
	// combined-name field.
	first := p.PickString("FIRSTNAME")
	last := p.PickString("FAMILYNAME")
	var name string
	if first != "" && last != "" {
		name = first + " " + last
	} else {
		name = p.PickString("PLAYERNAME", "NAMEI")
	}

	player := provider.Player{
		PlayerID: *playerID,
		FullName: name,
		TeamID:   teamID,
	}

	line := provider.PlayerGameStats{
		GameID:   gameID,
		PlayerID: *playerID,
		TeamID:   teamID,
		// Raw "MM:SS" text; the query layer converts to fractional minutes.
		Minutes: p.PickString("MINUTES", "MIN"),
		Pts:     provider.ToInt(p.Pick("POINTS", "PTS")),
		Reb:     provider.ToInt(p.Pick("REBOUNDSTOTAL", "REB")),
		Ast:     provider.ToInt(p.Pick("ASSISTS", "AST")),
		Stl:     provider.ToInt(p.Pick("STEALS", "STL")),
		Blk:     provider.ToInt(p.Pick("BLOCKS", "BLK")),
		Tov:     provider.ToInt(p.Pick("TURNOVERS", "TO")),
		FGM:     provider.ToInt(p.Pick("FIELDGOALSMADE", "FGM")),
		FGA:     provider.ToInt(p.Pick("FIELDGOALSATTEMPTED", "FGA")),
		FG3M:    provider.ToInt(p.Pick("THREEPOINTERSMADE", "FG3M")),
		FG3A:    provider.ToInt(p.Pick("THREEPOINTERSATTEMPTED", "FG3A")),
		FTM:     provider.ToInt(p.Pick("FREETHROWSMADE", "FTM")),
		FTA:     provider.ToInt(p.Pick("FREETHROWSATTEMPTED", "FTA")),
		// Some payloads encode this as "+12" / "-7".
		PlusMinus: provider.ToSignedInt(p.Pick(
			"PLUSMINUS", "PLUSMINUSPOINTS", "PLUS_MINUS", "PLUSMINUSPOINTSDIFFERENTIAL")),
	}

	return player, line, nil
}
