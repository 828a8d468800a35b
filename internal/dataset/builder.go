package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
)

// QuerySynthesizer produces a user query that could have led to response.
type QuerySynthesizer interface {
	Synthesize(ctx context.Context, response string) (string, error)
}

// Builder turns a directory of response documents into a Dataset.
type Builder struct {
	synth  QuerySynthesizer
	sorted bool
	logger *slog.Logger
}

// NewBuilder creates a builder. With sorted set, files are processed in
// lexicographic order instead of directory order.
func NewBuilder(synth QuerySynthesizer, sorted bool, logger *slog.Logger) *Builder {
	return &Builder{synth: synth, sorted: sorted, logger: logger}
}

// Build reads every response document in dir, synthesizes a query for each and
// returns the assembled records in processing order. The first failure aborts
// the build and nothing is returned.
func (b *Builder) Build(ctx context.Context, persona, dir string) (Dataset, error) {
	paths, err := ListResponseFiles(dir, b.sorted)
	if err != nil {
		return nil, err
	}

	b.logger.Info("response files discovered", "dir", dir, "files", len(paths))

	ds := make(Dataset, 0, len(paths))
	for i, path := range paths {
		response, err := readResponse(path)
		if err != nil {
			return nil, err
		}

		raw, err := b.synth.Synthesize(ctx, response)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrExternalService, path, err)
		}
		query := strings.TrimSpace(raw)
		if query == "" {
			return nil, fmt.Errorf("%w: %s: empty query", ErrExternalService, path)
		}

		ds = append(ds, NewRecord(persona, query, response))

		b.logger.Debug("record assembled",
			"file", filepath.Base(path),
			"index", i+1,
			"of", len(paths),
			"response_len", len(response),
			"query_len", len(query),
		)
	}

	b.logger.Info("dataset built", "records", len(ds))
	return ds, nil
}
