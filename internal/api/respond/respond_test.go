package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSONSetsHeaders(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteJSON(rec, []byte(`{"a":1}`), `W/"abc"`, time.Minute, false)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, `W/"abc"`, rec.Header().Get("ETag"))
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Equal(t, "public, max-age=60, stale-while-revalidate=30", rec.Header().Get("Cache-Control"))
	assert.Equal(t, `{"a":1}`, rec.Body.String())
}

func TestWriteJSONCacheHit(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteJSON(rec, []byte(`{}`), `W/"abc"`, time.Minute, true)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
}

func TestWriteNotModified(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteNotModified(rec, `W/"abc"`)

	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Equal(t, `W/"abc"`, rec.Header().Get("ETag"))
	assert.Empty(t, rec.Body.String())
}

func TestWriteError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusNotFound, "NOT_FOUND", "Player 99 not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	assert.Equal(t, "Player 99 not found", resp.Error.Message)
	assert.Empty(t, resp.Error.Detail)
}

func TestWriteErrorDetail(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteErrorDetail(rec, http.StatusBadGateway, "REFRESH_FAILED", "Backfill run failed", "discover games: HTTP 503")

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "discover games: HTTP 503", resp.Error.Detail)
}

func TestWriteJSONObject(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteJSONObject(rec, http.StatusOK, map[string]int{"teams": 30})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"teams":30}`, rec.Body.String())
}
