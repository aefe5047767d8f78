// Package textutil provides small text helpers for the translation pipeline:
// Unicode normalization of source text before prompting and rune-bounded
// snippets for log output.
package textutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize returns s in NFC form. Game assets and database dumps mix composed
// and decomposed kana; normalizing keeps glossary terms matchable and prompts
// stable across sources.
func Normalize(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}

// Snippet returns s flattened to one line and truncated to limit runes,
// appending an ellipsis when shortened. Intended for log previews only.
func Snippet(s string, limit int) string {
	replacer := strings.NewReplacer("\r", " ", "\n", " ", "\t", " ")
	clean := strings.Join(strings.Fields(replacer.Replace(s)), " ")
	if limit <= 0 {
		return clean
	}
	runes := []rune(clean)
	if len(runes) <= limit {
		return clean
	}
	return string(runes[:limit]) + "..."
}
