// Package gateway obtains the task dataset from an external store. Sources
// report their failures; Load turns any failure into an empty dataset so the
// dashboard always has something to render.
package gateway

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/bryan-cox/taskboard/internal/config"
	"github.com/bryan-cox/taskboard/internal/errors"
	"github.com/bryan-cox/taskboard/internal/model"
)

// Source fetches the full dataset in one read.
type Source interface {
	Name() string
	Fetch(ctx context.Context) (model.Dataset, error)
}

// Open builds the source selected by cfg.Source.Kind.
func Open(ctx context.Context, cfg *config.Config) (Source, error) {
	if cfg == nil {
		return nil, errors.ErrConfigNil
	}
	switch cfg.Source.Kind {
	case config.SourceFirebase:
		return NewFirebaseSource(ctx, cfg.Firebase)
	case config.SourceFile:
		return &FileSource{Path: cfg.Source.File}, nil
	case config.SourceSQLite:
		return &SQLiteSource{Path: cfg.Source.SQLite}, nil
	}
	return nil, errors.Wrapf(errors.ErrUnknownSource, "source.kind %q", cfg.Source.Kind)
}

// Load fetches the dataset once. Any failure, including a source that could
// not be built, is logged and yields an empty dataset. No retry is attempted.
func Load(ctx context.Context, src Source) model.Dataset {
	logger := zerolog.Ctx(ctx)

	start := time.Now()
	dataset, err := src.Fetch(ctx)
	if err != nil {
		logger.Warn().Err(err).Str("source", src.Name()).Msg("failed to fetch dataset, continuing with an empty dataset")
		return model.Dataset{}
	}
	if dataset == nil {
		dataset = model.Dataset{}
	}

	logger.Info().
		Str("source", src.Name()).
		Int("workspaces", len(dataset)).
		Int("records", dataset.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("dataset loaded")
	return dataset
}

// LoadFromConfig opens the configured source and loads it with Load's
// fail-soft semantics.
func LoadFromConfig(ctx context.Context, cfg *config.Config) model.Dataset {
	src, err := Open(ctx, cfg)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("dataset source unavailable, continuing with an empty dataset")
		return model.Dataset{}
	}
	return Load(ctx, src)
}

func logSkipped(ctx context.Context, source string, skipped []Skipped) {
	logger := zerolog.Ctx(ctx)
	for _, s := range skipped {
		logger.Warn().Str("source", source).Str("path", s.Path).Str("reason", s.Reason).Msg("skipping malformed entry")
	}
}
