// Package ask answers natural-language questions about the warehouse. A
// declarative intent table maps question patterns to typed query functions:
// each entry pairs a compiled regex with a parameter parser and a runner, so
// adding an intent is adding a table row, not another branch in a dispatch
// chain. The matched data is summarized by an external language-model
// service; the warehouse numbers always come from SQL, never from the model.
package ask

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hoopsight/hoopsight-data/internal/query"
)

// ErrNoIntent reports a question no table entry matches.
var ErrNoIntent = errors.New("question not understood")

// ErrPlayerNotFound reports a player-scoped question whose subject is not in
// the warehouse.
var ErrPlayerNotFound = errors.New("player not found")

const (
	defaultWindow = 5
	maxWindow     = 20
)

// Summarizer renders the final natural-language answer. Satisfied by
// *external.Summarizer.
type Summarizer interface {
	Configured() bool
	Summarize(ctx context.Context, question string, data interface{}) (string, error)
}

// Params carries everything the intent parsers extract from a question.
type Params struct {
	PlayerName string `json:"player_name,omitempty"`
	Category   string `json:"category,omitempty"`
	Window     int    `json:"window,omitempty"`
	Season     string `json:"season,omitempty"`
}

// Answer is the full Q&A response: the structured data that grounded the
// answer travels with the prose so callers can verify it.
type Answer struct {
	Question string      `json:"question"`
	Intent   string      `json:"intent"`
	Params   Params      `json:"params"`
	Data     interface{} `json:"data"`
	Answer   string      `json:"answer"`
}

// intent is one table row: a pattern, a parameter parser over its capture
// groups, and a runner producing the bounded data payload.
type intent struct {
	name  string
	re    *regexp.Regexp
	parse func(m []string) Params
	run   func(ctx context.Context, svc *Service, p Params) (interface{}, error)
}

// categoryAliases maps spoken stat names onto leaderboard categories.
var categoryAliases = map[string]string{
	"points":                 "pts",
	"scoring":                "pts",
	"rebounds":               "reb",
	"rebounding":             "reb",
	"boards":                 "reb",
	"assists":                "ast",
	"steals":                 "stl",
	"blocks":                 "blk",
	"turnovers":              "tov",
	"field goal percentage":  "fg_pct",
	"fg percentage":          "fg_pct",
	"shooting":               "fg_pct",
	"three point percentage": "fg3_pct",
	"3 point percentage":     "fg3_pct",
	"three point shooting":   "fg3_pct",
	"free throw percentage":  "ft_pct",
	"free throw shooting":    "ft_pct",
}

// shootingCategories marks categories answered by the ratio-of-totals
// leaderboard rather than the per-game-average one.
var shootingCategories = map[string]bool{
	"fg_pct": true, "fg3_pct": true, "ft_pct": true,
}

// intents is matched top to bottom; the first hit wins, so the more specific
// patterns come first.
var intents = []intent{
	{
		name: "leaders",
		re: regexp.MustCompile(
			`(?i)^who(?:'s| is| are)?\s+(?:the\s+)?(?:leads|leading|leaders?|best|top)(?:\s+the\s+league)?\s+(?:in|at|for)\s+(.+?)\??$`),
		parse: func(m []string) Params {
			return Params{Category: normalizeCategory(m[1])}
		},
		run: runLeaders,
	},
	{
		name: "trending",
		re: regexp.MustCompile(
			`(?i)\b(?:trending|heating up|on fire|hot right now|most improved|hottest)\b`),
		parse: func(m []string) Params { return Params{Window: defaultWindow} },
		run: func(ctx context.Context, svc *Service, p Params) (interface{}, error) {
			return svc.queries.TrendingScorers(ctx, p.Season, p.Window, 0, 10)
		},
	},
	{
		name: "standings",
		re: regexp.MustCompile(
			`(?i)\b(?:standings?|playoff (?:race|picture|seed)|best record|conference rank)\b`),
		parse: func(m []string) Params { return Params{} },
		run: func(ctx context.Context, svc *Service, p Params) (interface{}, error) {
			return svc.queries.Standings(ctx, p.Season)
		},
	},
	{
		name: "counts",
		re: regexp.MustCompile(
			`(?i)\bhow (?:much data|many (?:games|players|teams|rows))\b`),
		parse: func(m []string) Params { return Params{} },
		run: func(ctx context.Context, svc *Service, p Params) (interface{}, error) {
			return svc.queries.Counts(ctx)
		},
	},
	{
		name: "player_window",
		re: regexp.MustCompile(
			`(?i)^(?:how (?:has|is|was)\s+)?(.+?)(?:'s)?\s+(?:been\s+)?(?:playing|doing|performing|performed|stats?|numbers|game log)\b(?:.*?\b(?:last|past)\s+(\d{1,2})\s+games?)?`),
		parse: func(m []string) Params {
			return Params{PlayerName: strings.TrimSpace(m[1]), Window: parseWindow(m[2])}
		},
		run: runPlayerWindow,
	},
	{
		name: "player_last_n",
		re: regexp.MustCompile(
			`(?i)^(.+?)(?:'s)?\s+(?:over|in)?\s*(?:the\s+)?(?:last|past)\s+(\d{1,2})\s+games?\??$`),
		parse: func(m []string) Params {
			return Params{PlayerName: strings.TrimSpace(m[1]), Window: parseWindow(m[2])}
		},
		run: runPlayerWindow,
	},
}

func runLeaders(ctx context.Context, svc *Service, p Params) (interface{}, error) {
	if p.Category == "" {
		return nil, fmt.Errorf("%w: unrecognized stat category", ErrNoIntent)
	}
	if shootingCategories[p.Category] {
		return svc.queries.ShootingLeaders(ctx, p.Category, p.Season, 0, 0, 10)
	}
	return svc.queries.AverageLeaders(ctx, p.Category, p.Season, 0, 10)
}

func runPlayerWindow(ctx context.Context, svc *Service, p Params) (interface{}, error) {
	if p.PlayerName == "" {
		return nil, fmt.Errorf("%w: no player name", ErrPlayerNotFound)
	}
	matches, err := svc.queries.SearchPlayers(ctx, p.PlayerName, 1)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrPlayerNotFound, p.PlayerName)
	}
	return svc.queries.PlayerLastN(ctx, matches[0].PlayerID, p.Season, p.Window)
}

// Service wires the intent table to the query layer and the summarizer.
type Service struct {
	queries    *query.Service
	summarizer Summarizer
}

// New creates an ask service.
func New(queries *query.Service, summarizer Summarizer) *Service {
	return &Service{queries: queries, summarizer: summarizer}
}

// Dispatch matches the question against the intent table, runs the matched
// query, and has the summarizer phrase the result. Fails fast when no
// summarizer is configured: callers must know the answer path is down rather
// than receive degraded output.
func (s *Service) Dispatch(ctx context.Context, question, season string) (*Answer, error) {
	q := strings.TrimSpace(question)
	if q == "" {
		return nil, fmt.Errorf("%w: empty question", ErrNoIntent)
	}

	in, params, ok := match(q)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoIntent, q)
	}
	params.Season = season

	data, err := in.run(ctx, s, params)
	if err != nil {
		return nil, err
	}

	answer, err := s.summarizer.Summarize(ctx, q, data)
	if err != nil {
		return nil, err
	}

	return &Answer{
		Question: q,
		Intent:   in.name,
		Params:   params,
		Data:     data,
		Answer:   answer,
	}, nil
}

// match finds the first intent whose pattern accepts the question.
func match(question string) (*intent, Params, bool) {
	for i := range intents {
		if m := intents[i].re.FindStringSubmatch(question); m != nil {
			return &intents[i], intents[i].parse(m), true
		}
	}
	return nil, Params{}, false
}

// normalizeCategory resolves a spoken stat name to a leaderboard category,
// longest alias first so "three point percentage" is not eaten by "points".
func normalizeCategory(raw string) string {
	s := strings.ToLower(strings.TrimSpace(strings.TrimSuffix(raw, "?")))
	s = strings.Join(strings.Fields(s), " ")
	if cat, ok := categoryAliases[s]; ok {
		return cat
	}
	best, bestCat := "", ""
	for alias, cat := range categoryAliases {
		if strings.Contains(s, alias) && len(alias) > len(best) {
			best, bestCat = alias, cat
		}
	}
	return bestCat
}

func parseWindow(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return defaultWindow
	}
	if n > maxWindow {
		return maxWindow
	}
	return n
}
