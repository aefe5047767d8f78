package chara

import (
	"context"
	"log/slog"
	"strings"

	"umatl/internal/fileutil"
	"umatl/internal/logging"
	"umatl/internal/services"
)

// TranslationClient is the single-unit translation contract this package needs.
type TranslationClient interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Result reports what one table run did.
type Result struct {
	OutputPath string
	Translated int
	Skipped    int
	Failed     int
}

// Translator translates a whole character text table in one pass.
type Translator struct {
	client        TranslationClient
	sourcePath    string
	outputPath    string
	referencePath string
	logger        *slog.Logger
}

// NewTranslator constructs a character-table translator.
func NewTranslator(client TranslationClient, sourcePath, outputPath, referencePath string, logger *slog.Logger) *Translator {
	return &Translator{
		client:        client,
		sourcePath:    sourcePath,
		outputPath:    outputPath,
		referencePath: referencePath,
		logger:        logging.NewComponentLogger(logger, "chara"),
	}
}

// TranslateTable resolves every entry, consulting the reference snapshot
// first, and writes the merged table unconditionally at the end. Entry-level
// failures leave that entry untranslated for a future run; they never abort
// the table.
func (t *Translator) TranslateTable(ctx context.Context) (Result, error) {
	table, err := LoadTable(t.sourcePath)
	if err != nil {
		return Result{}, err
	}
	reference, err := LoadReference(t.referencePath)
	if err != nil {
		return Result{}, err
	}
	if reference != nil {
		t.logger.Info("reference table loaded",
			logging.String("path", t.referencePath),
			logging.Int("characters", len(reference)))
	}

	result := Result{OutputPath: t.outputPath}

	for _, charaID := range sortedKeys(table) {
		messages := table[charaID]
		for _, messageID := range sortedKeys(messages) {
			text := messages[messageID]
			if strings.TrimSpace(text) == "" {
				continue
			}

			if value, ok := reference.Lookup(charaID, messageID); ok {
				messages[messageID] = value
				result.Skipped++
				continue
			}

			if err := ctx.Err(); err != nil {
				return result, err
			}
			translated, err := t.client.Translate(ctx, text)
			if err != nil {
				if services.AbortsBatch(err) {
					return result, err
				}
				result.Failed++
				t.logger.Warn("entry translation failed",
					logging.String(logging.FieldCharaID, charaID),
					logging.String("message_id", messageID),
					logging.Error(err))
				continue
			}
			messages[messageID] = translated
			result.Translated++
		}
	}

	// The table is one merged artifact: written even when every entry was a
	// reference hit, so the output is always complete.
	if err := fileutil.WriteJSONAtomic(t.outputPath, table); err != nil {
		return result, services.Wrap(services.ErrIO, "chara", "write", t.outputPath, err)
	}

	t.logger.Info("character table written",
		logging.String("output", t.outputPath),
		logging.Int("translated", result.Translated),
		logging.Int("skipped", result.Skipped),
		logging.Int("failed", result.Failed))
	return result, nil
}
