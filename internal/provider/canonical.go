// Package provider defines canonical warehouse record types and the tolerant
// row representation used to read the upstream stats provider's tabular
// payloads. Provider adapters output these types, the seed layer writes them
// to Postgres.
package provider

import (
	"errors"
	"time"
)

// ErrUnavailable reports that a box score has not been published upstream
// yet (empty or contentless payload). Callers treat this as a soft skip,
// never as a failure.
var ErrUnavailable = errors.New("box score not available")

// DiscoveredGame is one row from the game-discovery endpoint: the external
// game ID plus whatever raw date value the provider attached to it. The date
// stays untyped here because the provider is inconsistent about its encoding;
// parsing happens during normalization and degrades to null on failure.
type DiscoveredGame struct {
	GameID  string
	RawDate any
}

// Team is the canonical team record written to the teams table.
// Points carries the team's score in a specific box score and is not
// persisted on the team row itself; it feeds home/away score attribution.
type Team struct {
	TeamID       int
	Name         string
	City         string
	Abbreviation string
	Conference   string
	Division     string
	Points       *int
}

// Player is the canonical player record written to the players table.
// TeamID is nullable: a player may be between teams.
type Player struct {
	PlayerID int
	FullName string
	TeamID   *int
}

// Game is the canonical game record written to the games table.
//
// GameDate and both scores are legitimately nullable — a scheduled game with
// no published box score is "not finalized", not an error. HomeAwayInferred
// flags that home/away attribution came from the provider's (away, home) row
// ordering rather than an explicit label.
type Game struct {
	GameID           string
	GameDate         *time.Time
	Season           string
	HomeTeamID       *int
	AwayTeamID       *int
	HomeScore        *int
	AwayScore        *int
	Status           string
	HomeAwayInferred bool
}

// StatusFinal marks a game whose home and away scores are both known.
const StatusFinal = "Final"

// PlayerGameStats is one player's stat line for one game, keyed by
// (GameID, PlayerID). Minutes stays the raw "MM:SS" text as delivered;
// conversion to fractional minutes is a query-layer concern.
type PlayerGameStats struct {
	GameID   string
	PlayerID int
	TeamID   *int
	Minutes  string

	Pts *int
	Reb *int
	Ast *int
	Stl *int
	Blk *int
	Tov *int

	FGM  *int
	FGA  *int
	FG3M *int
	FG3A *int
	FTM  *int
	FTA  *int

	// Canonicalized to a plain integer: signed-string forms like "+12"
	// are parsed before persisting.
	PlusMinus *int
}

// StandingRow is one team's denormalized standings snapshot for a season,
// keyed by (Season, TeamID) and overwritten wholesale on each refresh.
type StandingRow struct {
	Season       string
	TeamID       int
	TeamName     string
	TeamCity     string
	TeamSlug     string
	Conference   string
	PlayoffRank  *int
	Wins         *int
	Losses       *int
	WinPct       *float64
	Home         string
	Road         string
	L10          string
	Streak       string
}
