package nbastats

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoopsight/hoopsight-data/internal/provider"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(ClientConfig{
		BaseURL:           srv.URL,
		Timeout:           5 * time.Second,
		RequestsPerMinute: 100000, // no throttling in tests
	}, testLogger())
	return client, srv
}

func writeStats(w http.ResponseWriter, resp statsResponse) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func gameFinderResponse(gameIDs ...string) statsResponse {
	rows := make([][]any, 0, len(gameIDs))
	for _, id := range gameIDs {
		rows = append(rows, []any{id, "2025-11-02T00:00:00"})
	}
	return statsResponse{
		Resource: "leaguegamefinder",
		ResultSets: []resultSet{{
			Name:    "LeagueGameFinderResults",
			Headers: []string{"GAME_ID", "GAME_DATE"},
			RowSet:  rows,
		}},
	}
}

func TestFindGamesSendsExpectedParams(t *testing.T) {
	t.Parallel()

	var gotQuery map[string]string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"DateFrom":   r.URL.Query().Get("DateFrom"),
			"DateTo":     r.URL.Query().Get("DateTo"),
			"Season":     r.URL.Query().Get("Season"),
			"SeasonType": r.URL.Query().Get("SeasonType"),
			"LeagueID":   r.URL.Query().Get("LeagueID"),
		}
		writeStats(w, gameFinderResponse("0022500001", "0022500001", "0022500002"))
	}))

	from := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC)
	games, err := client.FindGames(context.Background(), from, to, "2025-26", "Regular Season")
	require.NoError(t, err)

	assert.Equal(t, "11/01/2025", gotQuery["DateFrom"])
	assert.Equal(t, "11/15/2025", gotQuery["DateTo"])
	assert.Equal(t, "2025-26", gotQuery["Season"])
	assert.Equal(t, "Regular Season", gotQuery["SeasonType"])
	assert.Equal(t, "00", gotQuery["LeagueID"])

	// One row per participating team comes back as-is; dedupe is the
	// caller's job.
	require.Len(t, games, 3)
	assert.Equal(t, "0022500001", games[0].GameID)
	assert.Equal(t, "2025-11-02T00:00:00", games[0].RawDate)
}

func TestFindGamesRetriesTransientFailures(t *testing.T) {
	t.Parallel()

	var calls int32
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		writeStats(w, gameFinderResponse("0022500009"))
	}))

	games, err := client.FindGames(context.Background(),
		time.Now().AddDate(0, 0, -7), time.Now(), "2025-26", "Regular Season")
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestFindGamesGivesUpAfterMaxAttempts(t *testing.T) {
	t.Parallel()

	var calls int32
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := client.FindGames(context.Background(),
		time.Now().AddDate(0, 0, -7), time.Now(), "2025-26", "Regular Season")
	require.Error(t, err)
	assert.EqualValues(t, discoveryMaxAttempts, atomic.LoadInt32(&calls))
}

func TestFindGamesNonTransientPropagatesImmediately(t *testing.T) {
	t.Parallel()

	var calls int32
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := client.FindGames(context.Background(),
		time.Now().AddDate(0, 0, -7), time.Now(), "2025-26", "Regular Season")
	require.Error(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls), "4xx other than 429 must not be retried")
}

func boxScoreResponse(playerRows, teamRows [][]any) statsResponse {
	return statsResponse{
		Resource: "boxscore",
		ResultSets: []resultSet{
			{
				Name:    "PlayerStats",
				Headers: []string{"personId", "firstName", "familyName", "teamId", "minutes", "points"},
				RowSet:  playerRows,
			},
			{
				Name:    "TeamStats",
				Headers: []string{"teamId", "teamName", "teamTricode", "points"},
				RowSet:  teamRows,
			},
		},
	}
}

func TestFetchBoxScoreSuccess(t *testing.T) {
	t.Parallel()

	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "0022500001", r.URL.Query().Get("GameID"))
		writeStats(w, boxScoreResponse(
			[][]any{{float64(2544), "LeBron", "James", float64(1610612747), "34:12", float64(28)}},
			[][]any{
				{float64(1610612744), "Warriors", "GSW", float64(110)},
				{float64(1610612747), "Lakers", "LAL", float64(118)},
			},
		))
	}))

	playerRows, teamRows, err := client.FetchBoxScore(context.Background(), "0022500001")
	require.NoError(t, err)
	require.Len(t, playerRows, 1)
	require.Len(t, teamRows, 2)

	// Headers are uppercased on the way into Row.
	assert.Equal(t, "LeBron", playerRows[0].PickString("FIRSTNAME"))
	assert.Equal(t, "34:12", playerRows[0].PickString("MINUTES"))
}

func TestFetchBoxScoreEmptyPayloadIsUnavailable(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		resp statsResponse
	}{
		{"no result sets", statsResponse{}},
		{"empty row sets", boxScoreResponse([][]any{}, [][]any{})},
		{"missing team stats", statsResponse{ResultSets: []resultSet{{
			Name:    "PlayerStats",
			Headers: []string{"personId"},
			RowSet:  [][]any{{float64(1)}},
		}}}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeStats(w, tc.resp)
			}))
			_, _, err := client.FetchBoxScore(context.Background(), "0022500001")
			assert.ErrorIs(t, err, provider.ErrUnavailable)
		})
	}
}

func TestFetchBoxScoreEmptyBodyIsUnavailable(t *testing.T) {
	t.Parallel()

	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	_, _, err := client.FetchBoxScore(context.Background(), "0022500001")
	assert.ErrorIs(t, err, provider.ErrUnavailable)
}

func TestFetchBoxScoreRetriesOnceThenFails(t *testing.T) {
	t.Parallel()

	var calls int32
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, _, err := client.FetchBoxScore(context.Background(), "0022500001")
	require.Error(t, err)
	assert.False(t, errors.Is(err, provider.ErrUnavailable))
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls), "exactly one retry")
}

func TestFetchBoxScoreRecoversOnRetry(t *testing.T) {
	t.Parallel()

	var calls int32
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeStats(w, boxScoreResponse(
			[][]any{{float64(2544), "LeBron", "James", float64(1610612747), "31:05", float64(24)}},
			[][]any{
				{float64(1610612744), "Warriors", "GSW", float64(101)},
				{float64(1610612747), "Lakers", "LAL", float64(99)},
			},
		))
	}))

	playerRows, _, err := client.FetchBoxScore(context.Background(), "0022500001")
	require.NoError(t, err)
	assert.Len(t, playerRows, 1)
}

func TestClientSendsConfiguredHeaders(t *testing.T) {
	t.Parallel()

	var gotReferer, gotCustom string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReferer = r.Header.Get("Referer")
		gotCustom = r.Header.Get("X-Custom")
		writeStats(w, gameFinderResponse())
	}))
	defer srv.Close()

	// Explicit headers replace the defaults entirely.
	client := NewClient(ClientConfig{
		BaseURL:           srv.URL,
		RequestsPerMinute: 100000,
		Headers:           map[string]string{"X-Custom": "yes"},
	}, testLogger())

	_, err := client.FindGames(context.Background(),
		time.Now().AddDate(0, 0, -1), time.Now(), "2025-26", "Regular Season")
	require.NoError(t, err)
	assert.Equal(t, "yes", gotCustom)
	assert.Empty(t, gotReferer)
}

func TestIsTransient(t *testing.T) {
	t.Parallel()

	assert.True(t, isTransient(&statusError{status: 429}))
	assert.True(t, isTransient(&statusError{status: 503}))
	assert.False(t, isTransient(&statusError{status: 403}))
	assert.False(t, isTransient(&statusError{status: 404}))
	assert.False(t, isTransient(nil))
}
