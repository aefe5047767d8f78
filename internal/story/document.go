package story

import (
	"encoding/json"
	"os"
	"path/filepath"

	"umatl/internal/services"
)

// MonologueMarker is the literal speaker name denoting narration. Blocks
// carrying it (or no name at all) get an empty translated name and the name is
// never sent to the backend.
const MonologueMarker = "モノローグ"

// TextBlock is one translatable dialogue line with optional player choices.
type TextBlock struct {
	Name           string   `json:"name"`
	Text           string   `json:"text"`
	ChoiceDataList []string `json:"choice_data_list"`
}

// Document is one extracted story/home/lyrics/preview file. It is read once,
// mutated in place during translation, written once, then discarded.
type Document struct {
	Title         string      `json:"title,omitempty"`
	NoWrap        *bool       `json:"no_wrap,omitempty"`
	TextBlockList []TextBlock `json:"text_block_list"`
}

// LoadDocument reads and validates a story document. Missing files or
// unreadable content classify as ErrIO; structurally wrong JSON as
// ErrMalformedInput.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrIO, "story", "load", path, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, services.Wrap(services.ErrMalformedInput, "story", "load", path, err)
	}
	if doc.TextBlockList == nil {
		return nil, services.Wrap(services.ErrMalformedInput, "story", "load", path+": missing text_block_list", nil)
	}
	// Normalize so every block marshals with an explicit choice list, matching
	// the translated-file convention.
	for i := range doc.TextBlockList {
		if doc.TextBlockList[i].ChoiceDataList == nil {
			doc.TextBlockList[i].ChoiceDataList = []string{}
		}
	}
	return &doc, nil
}

// OutputPath maps an input path under rawRoot to the mirrored location under
// translatedRoot.
func OutputPath(rawRoot, translatedRoot, inputPath string) (string, error) {
	rel, err := filepath.Rel(rawRoot, inputPath)
	if err != nil {
		return "", services.Wrap(services.ErrConfiguration, "story", "output path",
			inputPath+" is not under "+rawRoot, err)
	}
	return filepath.Join(translatedRoot, rel), nil
}
