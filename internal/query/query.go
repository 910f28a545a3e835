package query

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hoopsight/hoopsight-data/internal/config"
	"github.com/hoopsight/hoopsight-data/internal/db"
)

// ErrUnknownCategory reports a leaderboard category outside the whitelist.
var ErrUnknownCategory = errors.New("unknown leaderboard category")

// statColumns whitelists the counting-stat categories that may be
// interpolated into leaderboard SQL. Dynamic column names never come from
// request input directly.
var statColumns = map[string]string{
	"pts": "pts",
	"reb": "reb",
	"ast": "ast",
	"stl": "stl",
	"blk": "blk",
	"tov": "tov",
}

// shootingColumns maps shooting categories to their made/attempted columns.
var shootingColumns = map[string][2]string{
	"fg_pct":  {"fgm", "fga"},
	"fg3_pct": {"fg3m", "fg3a"},
	"ft_pct":  {"ftm", "fta"},
}

// Service answers all warehouse reads. It holds the pool directly; queries
// go through prepared statements where the shape is fixed and through
// whitelist-built SQL for the dynamic leaderboards.
type Service struct {
	pool *db.Pool
}

// New creates a read service over the pool.
func New(pool *db.Pool) *Service {
	return &Service{pool: pool}
}

// Counts reports warehouse row counts, the cheapest possible freshness and
// sanity signal.
type Counts struct {
	Teams           int `json:"teams"`
	Players         int `json:"players"`
	Games           int `json:"games"`
	PlayerGameStats int `json:"player_game_stats"`
}

func (s *Service) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	err := s.pool.QueryRow(ctx, "warehouse_counts").
		Scan(&c.Teams, &c.Players, &c.Games, &c.PlayerGameStats)
	if err != nil {
		return Counts{}, fmt.Errorf("warehouse counts: %w", err)
	}
	return c, nil
}

// PlayerSummary is a player directory entry.
type PlayerSummary struct {
	PlayerID int    `json:"player_id"`
	FullName string `json:"full_name"`
	TeamID   *int   `json:"team_id"`
}

// SearchPlayers finds players whose name contains the query,
// case-insensitively, ordered by name.
func (s *Service) SearchPlayers(ctx context.Context, q string, limit int) ([]PlayerSummary, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	pattern := "%" + strings.ToLower(strings.TrimSpace(q)) + "%"

	rows, err := s.pool.Query(ctx, "player_search", pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search players: %w", err)
	}
	defer rows.Close()

	players := []PlayerSummary{}
	for rows.Next() {
		var p PlayerSummary
		if err := rows.Scan(&p.PlayerID, &p.FullName, &p.TeamID); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// PlayerByID looks up a single player. Returns pgx.ErrNoRows when absent.
func (s *Service) PlayerByID(ctx context.Context, playerID int) (*PlayerSummary, error) {
	var p PlayerSummary
	err := s.pool.QueryRow(ctx, "player_by_id", playerID).
		Scan(&p.PlayerID, &p.FullName, &p.TeamID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GameLogEntry is one game in a player's recent log, newest first.
type GameLogEntry struct {
	GameID    string     `json:"game_id"`
	GameDate  *time.Time `json:"game_date"`
	TeamID    *int       `json:"team_id"`
	Minutes   *string    `json:"minutes"`
	Pts       *int       `json:"pts"`
	Reb       *int       `json:"reb"`
	Ast       *int       `json:"ast"`
	Stl       *int       `json:"stl"`
	Blk       *int       `json:"blk"`
	Tov       *int       `json:"tov"`
	FGM       *int       `json:"fgm"`
	FGA       *int       `json:"fga"`
	FG3M      *int       `json:"fg3m"`
	FG3A      *int       `json:"fg3a"`
	FTM       *int       `json:"ftm"`
	FTA       *int       `json:"fta"`
	PlusMinus *int       `json:"plus_minus"`
}

// Averages summarizes a game-log window. Counting stats are null-ignoring
// means; the three percentages are ratio-of-totals over the window, null when
// the window has zero attempts.
type Averages struct {
	Minutes *float64 `json:"min"`
	Pts     *float64 `json:"pts"`
	Reb     *float64 `json:"reb"`
	Ast     *float64 `json:"ast"`
	Stl     *float64 `json:"stl"`
	Blk     *float64 `json:"blk"`
	Tov     *float64 `json:"tov"`
	FGPct   *float64 `json:"fg_pct"`
	FG3Pct  *float64 `json:"fg3_pct"`
	FTPct   *float64 `json:"ft_pct"`
}

// GameLog is a player's last-N window with its computed averages.
type GameLog struct {
	PlayerID int            `json:"player_id"`
	Season   string         `json:"season"`
	N        int            `json:"n"`
	Count    int            `json:"count"`
	Averages Averages       `json:"averages"`
	Games    []GameLogEntry `json:"games"`
}

// PlayerLastN returns a player's most recent regular-season games for the
// season, at most n of them, plus aggregate averages over exactly those
// games. A player with no games yields an empty log, not an error.
func (s *Service) PlayerLastN(ctx context.Context, playerID int, season string, n int) (*GameLog, error) {
	if season == "" {
		season = config.CurrentSeason
	}
	if n <= 0 || n > 82 {
		n = 5
	}

	rows, err := s.pool.Query(ctx, "player_last_n",
		playerID, season, config.RegularSeasonPrefix+"%", n)
	if err != nil {
		return nil, fmt.Errorf("player last-n: %w", err)
	}
	defer rows.Close()

	games := []GameLogEntry{}
	for rows.Next() {
		var g GameLogEntry
		err := rows.Scan(
			&g.GameID, &g.GameDate, &g.TeamID, &g.Minutes,
			&g.Pts, &g.Reb, &g.Ast, &g.Stl, &g.Blk, &g.Tov,
			&g.FGM, &g.FGA, &g.FG3M, &g.FG3A, &g.FTM, &g.FTA, &g.PlusMinus,
		)
		if err != nil {
			return nil, fmt.Errorf("scan game log: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &GameLog{
		PlayerID: playerID,
		Season:   season,
		N:        n,
		Count:    len(games),
		Averages: computeAverages(games),
		Games:    games,
	}, nil
}

// computeAverages aggregates a game-log window. Percentages divide window
// totals, never average per-game percentages.
func computeAverages(games []GameLogEntry) Averages {
	var (
		minutes                        []*float64
		pts, reb, ast, stl, blk, tov   []*int
		fgm, fga, fg3m, fg3a, ftm, fta int
	)
	for _, g := range games {
		if g.Minutes != nil {
			minutes = append(minutes, MinutesToFloat(*g.Minutes))
		} else {
			minutes = append(minutes, nil)
		}
		pts = append(pts, g.Pts)
		reb = append(reb, g.Reb)
		ast = append(ast, g.Ast)
		stl = append(stl, g.Stl)
		blk = append(blk, g.Blk)
		tov = append(tov, g.Tov)
		fgm += orZero(g.FGM)
		fga += orZero(g.FGA)
		fg3m += orZero(g.FG3M)
		fg3a += orZero(g.FG3A)
		ftm += orZero(g.FTM)
		fta += orZero(g.FTA)
	}
	return Averages{
		Minutes: safeAvgFloats(minutes),
		Pts:     safeAvg(pts),
		Reb:     safeAvg(reb),
		Ast:     safeAvg(ast),
		Stl:     safeAvg(stl),
		Blk:     safeAvg(blk),
		Tov:     safeAvg(tov),
		FGPct:   ratio(fgm, fga, 4),
		FG3Pct:  ratio(fg3m, fg3a, 4),
		FTPct:   ratio(ftm, fta, 4),
	}
}

// AverageLeaders returns the top players by per-game average for a counting
// stat, regular-season games only, gated by a minimum games-played floor.
func (s *Service) AverageLeaders(ctx context.Context, category, season string, minGP, limit int) ([]Leader, error) {
	col, ok := statColumns[category]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	if season == "" {
		season = config.CurrentSeason
	}
	minGP, limit = clampLeaderParams(minGP, limit)

	// col comes from the whitelist above, never from the request.
	sql := fmt.Sprintf(`SELECT
			p.nba_player_id, p.full_name, t.abbreviation,
			count(*) AS gp, sum(s.%s) AS total
		FROM player_game_stats s
		JOIN players p ON p.nba_player_id = s.nba_player_id
		JOIN games g ON g.nba_game_id = s.nba_game_id
		LEFT JOIN teams t ON t.nba_team_id = p.nba_team_id
		WHERE g.season = $1 AND g.nba_game_id LIKE $2
		GROUP BY p.nba_player_id, p.full_name, t.abbreviation`, col)

	rows, err := s.pool.Query(ctx, sql, season, config.RegularSeasonPrefix+"%")
	if err != nil {
		return nil, fmt.Errorf("average leaders %s: %w", category, err)
	}
	defer rows.Close()

	var totals []totalsRow
	for rows.Next() {
		var r totalsRow
		if err := rows.Scan(&r.PlayerID, &r.PlayerName, &r.TeamAbbreviation, &r.GP, &r.Total); err != nil {
			return nil, fmt.Errorf("scan leader totals: %w", err)
		}
		totals = append(totals, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return computeAverageLeaders(totals, minGP, limit), nil
}

// ShootingLeaders returns the top players by ratio-of-totals percentage for
// a shooting category, gated by both a games-played floor and an attempts
// floor.
func (s *Service) ShootingLeaders(ctx context.Context, category, season string, minAttempts, minGP, limit int) ([]Leader, error) {
	cols, ok := shootingColumns[category]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	if season == "" {
		season = config.CurrentSeason
	}
	minGP, limit = clampLeaderParams(minGP, limit)
	if minAttempts <= 0 {
		minAttempts = defaultMinAttempts(category)
	}

	sql := fmt.Sprintf(`SELECT
			p.nba_player_id, p.full_name, t.abbreviation,
			count(*) AS gp, sum(s.%s) AS made, sum(s.%s) AS attempted
		FROM player_game_stats s
		JOIN players p ON p.nba_player_id = s.nba_player_id
		JOIN games g ON g.nba_game_id = s.nba_game_id
		LEFT JOIN teams t ON t.nba_team_id = p.nba_team_id
		WHERE g.season = $1 AND g.nba_game_id LIKE $2
		GROUP BY p.nba_player_id, p.full_name, t.abbreviation`, cols[0], cols[1])

	rows, err := s.pool.Query(ctx, sql, season, config.RegularSeasonPrefix+"%")
	if err != nil {
		return nil, fmt.Errorf("shooting leaders %s: %w", category, err)
	}
	defer rows.Close()

	var shooting []shootingRow
	for rows.Next() {
		var r shootingRow
		if err := rows.Scan(&r.PlayerID, &r.PlayerName, &r.TeamAbbreviation, &r.GP, &r.Made, &r.Attempted); err != nil {
			return nil, fmt.Errorf("scan shooting totals: %w", err)
		}
		shooting = append(shooting, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return computeShootingLeaders(shooting, minAttempts, minGP, limit), nil
}

// TrendingScorers ranks players by how far their last-window scoring average
// sits above their season average. Window membership comes from a per-player
// date-descending row_number ranking, the same recency rule the last-N game
// log uses.
func (s *Service) TrendingScorers(ctx context.Context, season string, window, minGP, limit int) ([]TrendingLeader, error) {
	if season == "" {
		season = config.CurrentSeason
	}
	if window <= 0 || window > 20 {
		window = 5
	}
	minGP, limit = clampLeaderParams(minGP, limit)

	const sql = `WITH ranked AS (
			SELECT
				s.nba_player_id, s.pts,
				row_number() OVER (
					PARTITION BY s.nba_player_id
					ORDER BY g.game_date DESC NULLS LAST
				) AS rn
			FROM player_game_stats s
			JOIN games g ON g.nba_game_id = s.nba_game_id
			WHERE g.season = $1 AND g.nba_game_id LIKE $2
		)
		SELECT
			p.nba_player_id, p.full_name, t.abbreviation,
			count(*) AS gp,
			sum(r.pts) AS season_pts,
			count(*) FILTER (WHERE r.rn <= $3) AS recent_gp,
			sum(r.pts) FILTER (WHERE r.rn <= $3) AS recent_pts
		FROM ranked r
		JOIN players p ON p.nba_player_id = r.nba_player_id
		LEFT JOIN teams t ON t.nba_team_id = p.nba_team_id
		GROUP BY p.nba_player_id, p.full_name, t.abbreviation`

	rows, err := s.pool.Query(ctx, sql, season, config.RegularSeasonPrefix+"%", window)
	if err != nil {
		return nil, fmt.Errorf("trending scorers: %w", err)
	}
	defer rows.Close()

	var trending []trendingRow
	for rows.Next() {
		var r trendingRow
		if err := rows.Scan(&r.PlayerID, &r.PlayerName, &r.TeamAbbreviation,
			&r.GP, &r.SeasonPts, &r.RecentGP, &r.RecentPts); err != nil {
			return nil, fmt.Errorf("scan trending: %w", err)
		}
		trending = append(trending, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return computeTrending(trending, window, minGP, limit), nil
}

// StandingEntry is one team's row in the standings snapshot.
type StandingEntry struct {
	TeamID      int       `json:"team_id"`
	TeamName    *string   `json:"team_name"`
	TeamCity    *string   `json:"team_city"`
	TeamSlug    *string   `json:"team_slug"`
	Conference  *string   `json:"conference"`
	PlayoffRank *int      `json:"playoff_rank"`
	Wins        *int      `json:"wins"`
	Losses      *int      `json:"losses"`
	WinPct      *float64  `json:"win_pct"`
	Home        *string   `json:"home"`
	Road        *string   `json:"road"`
	L10         *string   `json:"l10"`
	Streak      *string   `json:"streak"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Standings returns the snapshot for a season ordered by conference and
// playoff rank. An empty snapshot is an empty slice, not an error.
func (s *Service) Standings(ctx context.Context, season string) ([]StandingEntry, error) {
	if season == "" {
		season = config.CurrentSeason
	}
	rows, err := s.pool.Query(ctx, "standings_by_season", season)
	if err != nil {
		return nil, fmt.Errorf("standings %s: %w", season, err)
	}
	defer rows.Close()

	standings := []StandingEntry{}
	for rows.Next() {
		var e StandingEntry
		err := rows.Scan(
			&e.TeamID, &e.TeamName, &e.TeamCity, &e.TeamSlug, &e.Conference,
			&e.PlayoffRank, &e.Wins, &e.Losses, &e.WinPct, &e.Home, &e.Road,
			&e.L10, &e.Streak, &e.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan standing: %w", err)
		}
		standings = append(standings, e)
	}
	return standings, rows.Err()
}

// IsNotFound reports whether err is the no-rows sentinel from a point lookup.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func clampLeaderParams(minGP, limit int) (int, int) {
	if minGP <= 0 {
		minGP = 10
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return minGP, limit
}

// defaultMinAttempts mirrors the qualification floors used by league
// leaderboards, scaled down for partial seasons.
func defaultMinAttempts(category string) int {
	switch category {
	case "ft_pct":
		return 25
	case "fg3_pct":
		return 20
	default:
		return 100
	}
}
