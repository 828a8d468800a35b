package dataset

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeSynth returns a fixed query and records what it was asked.
type fakeSynth struct {
	query string
	err   error
	calls []string
}

func (f *fakeSynth) Synthesize(_ context.Context, response string) (string, error) {
	f.calls = append(f.calls, response)
	return f.query, f.err
}

var errBoom = errors.New("boom")

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}
