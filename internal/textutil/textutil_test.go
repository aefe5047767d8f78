package textutil

import "testing"

func TestNormalizeComposesKana(t *testing.T) {
	// "が" as base + combining dakuten should compose to a single rune.
	decomposed := "が"
	got := Normalize(decomposed)
	if got != "が" {
		t.Fatalf("expected composed form, got %q", got)
	}
}

func TestNormalizePassthrough(t *testing.T) {
	in := "こんにちは、世界"
	if got := Normalize(in); got != in {
		t.Fatalf("already-normalized text changed: %q", got)
	}
}

func TestSnippetTruncatesRunes(t *testing.T) {
	got := Snippet("あいうえおかきくけこ", 5)
	if got != "あいうえお..." {
		t.Fatalf("unexpected snippet %q", got)
	}
}

func TestSnippetFlattensWhitespace(t *testing.T) {
	got := Snippet("line one\nline\ttwo", 0)
	if got != "line one line two" {
		t.Fatalf("unexpected snippet %q", got)
	}
}
