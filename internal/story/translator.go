package story

import (
	"context"
	"log/slog"
	"strings"

	"umatl/internal/fileutil"
	"umatl/internal/logging"
	"umatl/internal/services"
	"umatl/internal/textutil"
)

// TranslationClient is the single-unit translation contract this package needs.
type TranslationClient interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Result reports what one document translation did.
type Result struct {
	OutputPath string
	// Translated counts units sent to the backend.
	Translated int
	// Skipped counts deliberate non-calls (suppressed monologue names, or one
	// document-level skip when the output already exists).
	Skipped int
	// DocumentSkipped is true when the output file already existed and nothing
	// was translated or written.
	DocumentSkipped bool
}

// Translator applies the backend to one story document at a time.
type Translator struct {
	client         TranslationClient
	rawRoot        string
	translatedRoot string
	logger         *slog.Logger
}

// NewTranslator constructs a story translator rooted at the given input and
// output directories.
func NewTranslator(client TranslationClient, rawRoot, translatedRoot string, logger *slog.Logger) *Translator {
	return &Translator{
		client:         client,
		rawRoot:        rawRoot,
		translatedRoot: translatedRoot,
		logger:         logging.NewComponentLogger(logger, "story"),
	}
}

// TranslateFile translates one document end to end. The write happens only
// after every unit resolved, so an interrupted or failed document leaves no
// output file and is retried in full on the next run.
func (t *Translator) TranslateFile(ctx context.Context, inputPath string) (Result, error) {
	outputPath, err := OutputPath(t.rawRoot, t.translatedRoot, inputPath)
	if err != nil {
		return Result{}, err
	}

	if fileutil.Exists(outputPath) {
		t.logger.Debug("output exists, skipping document", logging.String("output", outputPath))
		return Result{OutputPath: outputPath, Skipped: 1, DocumentSkipped: true}, nil
	}

	doc, err := LoadDocument(inputPath)
	if err != nil {
		return Result{}, err
	}

	result := Result{OutputPath: outputPath}

	if strings.TrimSpace(doc.Title) != "" {
		translated, err := t.client.Translate(ctx, doc.Title)
		if err != nil {
			return Result{}, err
		}
		doc.Title = translated
		result.Translated++
	}

	for i := range doc.TextBlockList {
		block := &doc.TextBlockList[i]

		switch {
		case block.Name == "":
			// Narration without a marker: nothing to translate or suppress.
		case block.Name == MonologueMarker:
			block.Name = ""
			result.Skipped++
		default:
			translated, err := t.client.Translate(ctx, block.Name)
			if err != nil {
				return Result{}, err
			}
			block.Name = translated
			result.Translated++
		}

		if strings.TrimSpace(block.Text) != "" {
			translated, err := t.client.Translate(ctx, block.Text)
			if err != nil {
				return Result{}, err
			}
			block.Text = translated
			result.Translated++
		}

		for j, choice := range block.ChoiceDataList {
			translated, err := t.client.Translate(ctx, choice)
			if err != nil {
				return Result{}, err
			}
			block.ChoiceDataList[j] = translated
			result.Translated++
		}
	}

	if err := fileutil.WriteJSONAtomic(outputPath, doc); err != nil {
		return Result{}, services.Wrap(services.ErrIO, "story", "write", outputPath, err)
	}

	t.logger.Debug("document translated",
		logging.String("output", outputPath),
		logging.Int("translated", result.Translated),
		logging.Int("skipped", result.Skipped),
		logging.String("title", textutil.Snippet(doc.Title, 40)))
	return result, nil
}
