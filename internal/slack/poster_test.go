package slack

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFormatRunSummary_Success(t *testing.T) {
	msg := formatRunSummary(RunSummary{
		RunID:      "r-1",
		Provider:   "openai",
		Model:      "gpt-4-1106-preview",
		InputDir:   "responses",
		OutputFile: "train.jsonl",
		Records:    14,
		Duration:   3*time.Second + 250*time.Millisecond,
	})

	for _, want := range []string{"Dataset built", "responses", "gpt-4-1106-preview (openai)", "train.jsonl", "14", "3.25s"} {
		assert.Contains(t, msg, want)
	}
	assert.NotContains(t, msg, "Error")
}

func TestFormatRunSummary_Empty(t *testing.T) {
	msg := formatRunSummary(RunSummary{OutputFile: "o.jsonl"})
	assert.Contains(t, msg, "No .txt files found")
}

func TestFormatRunSummary_Failure(t *testing.T) {
	msg := formatRunSummary(RunSummary{
		InputDir: "responses",
		Records:  3,
		Err:      errors.New("external service error: b.txt: api error 429"),
	})

	assert.Contains(t, msg, "Dataset build failed")
	assert.Contains(t, msg, "api error 429")
	assert.NotContains(t, msg, "Records")
}

func TestPostRunSummary(t *testing.T) {
	var form url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat.postMessage", r.URL.Path)
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"ok": true, "channel": "C123", "ts": "1700000000.000100"})
	}))
	defer server.Close()

	p := NewPoster("xoxb-test", "C123", server.URL, discardLogger())

	ts, err := p.PostRunSummary(context.Background(), RunSummary{RunID: "r-9", Records: 2})
	require.NoError(t, err)
	assert.Equal(t, "1700000000.000100", ts)
	assert.Equal(t, "C123", form.Get("channel"))
	assert.Contains(t, form.Get("text"), "Records:* 2")
	assert.Contains(t, form.Get("blocks"), "run r-9")
}

func TestPostRunSummary_SlackError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "channel_not_found"})
	}))
	defer server.Close()

	p := NewPoster("xoxb-test", "C404", server.URL+"/", discardLogger())

	_, err := p.PostRunSummary(context.Background(), RunSummary{RunID: "r"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel_not_found")
}
