package external

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizerNotConfigured(t *testing.T) {
	t.Parallel()

	s := NewSummarizer("", "", "")
	assert.False(t, s.Configured())

	_, err := s.Summarize(context.Background(), "who leads in points", nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSummarizerSendsQuestionAndData(t *testing.T) {
	t.Parallel()

	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "Jokic leads with 29.3 PPG."}},
			},
		})
	}))
	defer srv.Close()

	s := NewSummarizer(srv.URL, "test-key", "test-model")
	require.True(t, s.Configured())

	answer, err := s.Summarize(context.Background(), "who leads in points",
		map[string]any{"leader": "Jokic"})
	require.NoError(t, err)
	assert.Equal(t, "Jokic leads with 29.3 PPG.", answer)

	assert.Equal(t, "test-model", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Contains(t, got.Messages[1].Content, "who leads in points")
	assert.Contains(t, got.Messages[1].Content, "Jokic")
}

func TestSummarizerAPIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "invalid api key"},
		})
	}))
	defer srv.Close()

	s := NewSummarizer(srv.URL, "bad-key", "")
	_, err := s.Summarize(context.Background(), "q", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestSummarizerEmptyChoices(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	s := NewSummarizer(srv.URL, "key", "")
	_, err := s.Summarize(context.Background(), "q", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no content")
}

func TestSummarizerDefaultModel(t *testing.T) {
	t.Parallel()

	s := NewSummarizer("http://example.invalid", "key", "")
	status := s.Status()
	assert.Equal(t, defaultModel, status["model"])
	assert.Equal(t, true, status["configured"])
}
