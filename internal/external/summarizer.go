// Package external provides clients for third-party APIs (summarization).
package external

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ---------------------------------------------------------------------------
// Constants
// ---------------------------------------------------------------------------

const (
	summarizerTimeout   = 30 * time.Second
	summarizerMaxTokens = 300
	defaultModel        = "gpt-4o-mini"
)

// ErrNotConfigured reports that no summarizer credentials are present. The
// caller surfaces this as a service-unavailable condition instead of
// answering with raw data.
var ErrNotConfigured = errors.New("summarizer not configured")

const systemPrompt = "You are a basketball stats assistant. Answer the " +
	"user's question in two or three sentences using only the JSON data " +
	"provided. Do not invent numbers that are not in the data. If the data " +
	"is empty, say so plainly."

// ---------------------------------------------------------------------------
// Summarizer — chat-completions facade
// ---------------------------------------------------------------------------

// Summarizer turns a question plus a bounded JSON payload of warehouse data
// into a short natural-language answer via an OpenAI-compatible
// chat-completions endpoint.
type Summarizer struct {
	baseURL    string
	apiKey     string // empty = not configured
	model      string
	httpClient *http.Client
}

// NewSummarizer creates a summarizer client. apiKey may be empty; calls then
// fail with ErrNotConfigured.
func NewSummarizer(baseURL, apiKey, model string) *Summarizer {
	if model == "" {
		model = defaultModel
	}
	return &Summarizer{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: summarizerTimeout,
		},
	}
}

// Configured reports whether credentials are present.
func (s *Summarizer) Configured() bool {
	return s.apiKey != "" && s.baseURL != ""
}

// Status returns service configuration status.
func (s *Summarizer) Status() map[string]interface{} {
	return map[string]interface{}{
		"configured": s.Configured(),
		"model":      s.model,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Summarize renders a short answer to question grounded in data. data must
// already be bounded (small leader lists, single game logs); the whole
// payload is serialized into the prompt.
func (s *Summarizer) Summarize(ctx context.Context, question string, data interface{}) (string, error) {
	if !s.Configured() {
		return "", ErrNotConfigured
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("encode summary data: %w", err)
	}

	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf("Question: %s\n\nData: %s", question, payload)},
		},
		MaxTokens:   summarizerMaxTokens,
		Temperature: 0.2,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("encode summarizer request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("summarizer request error: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("summarizer read error: %w", err)
	}

	var chat chatResponse
	if err := json.Unmarshal(raw, &chat); err != nil {
		return "", fmt.Errorf("summarizer decode error (HTTP %d): %w", resp.StatusCode, err)
	}
	if chat.Error != nil {
		return "", fmt.Errorf("summarizer error: %s", chat.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("summarizer HTTP %d", resp.StatusCode)
	}
	if len(chat.Choices) == 0 || chat.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("summarizer returned no content")
	}
	return chat.Choices[0].Message.Content, nil
}
