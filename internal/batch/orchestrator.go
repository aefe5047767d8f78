package batch

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"umatl/internal/chara"
	"umatl/internal/logging"
	"umatl/internal/services"
	"umatl/internal/story"
)

// StoryTranslator translates one story document file.
type StoryTranslator interface {
	TranslateFile(ctx context.Context, inputPath string) (story.Result, error)
}

// CharaTranslator translates the character system-text table.
type CharaTranslator interface {
	TranslateTable(ctx context.Context) (chara.Result, error)
}

// Orchestrator walks input collections, applies the matching translator per
// document, and owns the run's statistics.
type Orchestrator struct {
	stories StoryTranslator
	tables  CharaTranslator
	logger  *slog.Logger
}

// New constructs an orchestrator. Either translator may be nil when the
// corresponding batch is never run.
func New(stories StoryTranslator, tables CharaTranslator, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		stories: stories,
		tables:  tables,
		logger:  logging.NewComponentLogger(logger, "batch"),
	}
}

// RunStoryBatch translates every JSON file under root. A single document's
// failure is counted and logged; the walk continues. Traversal order is
// lexical per filepath.WalkDir but is not a behavioral contract.
func (o *Orchestrator) RunStoryBatch(ctx context.Context, root string) (*RunStats, error) {
	stats := NewRunStats()
	ctx = services.WithRunID(ctx, stats.RunID)
	logger := logging.WithContext(ctx, o.logger)
	logger.Info("story batch started", logging.String("root", root))

	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return services.Wrap(services.ErrIO, "batch", "walk", root, err)
			}
			stats.Failed++
			logger.Warn("unreadable entry skipped", logging.String("path", path), logging.Error(err))
			return nil
		}
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(path), ".json") {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		result, err := o.stories.TranslateFile(services.WithDocument(ctx, path), path)
		if err != nil {
			if services.AbortsBatch(err) {
				return err
			}
			stats.Failed++
			logger.Warn("document failed",
				logging.String(logging.FieldDocument, path),
				logging.Error(err))
			return nil
		}

		stats.Translated += result.Translated
		stats.Skipped += result.Skipped
		if !result.DocumentSkipped {
			stats.RecordOutput(result.OutputPath)
		}
		return nil
	})

	logger.Info("story batch finished",
		logging.Int("translated", stats.Translated),
		logging.Int("skipped", stats.Skipped),
		logging.Int("failed", stats.Failed),
		logging.Int("written", len(stats.OutputPaths())))
	return stats, walkErr
}

// RunCharacterBatch translates the character table in one invocation.
func (o *Orchestrator) RunCharacterBatch(ctx context.Context) (*RunStats, error) {
	stats := NewRunStats()
	ctx = services.WithRunID(ctx, stats.RunID)
	logger := logging.WithContext(ctx, o.logger)
	logger.Info("character batch started")

	result, err := o.tables.TranslateTable(ctx)
	if err != nil {
		stats.Failed++
		logger.Warn("character table failed", logging.Error(err))
		return stats, err
	}

	stats.Translated += result.Translated
	stats.Skipped += result.Skipped
	stats.Failed += result.Failed
	stats.RecordOutput(result.OutputPath)

	logger.Info("character batch finished",
		logging.Int("translated", stats.Translated),
		logging.Int("skipped", stats.Skipped),
		logging.Int("failed", stats.Failed))
	return stats, nil
}
