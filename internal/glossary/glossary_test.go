package glossary

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileYieldsEmpty(t *testing.T) {
	g, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if g.Len() != 0 || g.Serialized() != "{}" {
		t.Fatalf("expected empty glossary, got %d terms %q", g.Len(), g.Serialized())
	}
}

func TestLoadDeterministicSerialization(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glossary.json")
	content := `{"ウマ娘":"Uma Musume","トレーナー":"Trainer"}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	g, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if g.Len() != 2 {
		t.Fatalf("expected 2 terms, got %d", g.Len())
	}
	// Keys marshal sorted, so repeated loads serialize identically.
	g2, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if g.Serialized() != g2.Serialized() {
		t.Fatalf("serialization not stable: %q vs %q", g.Serialized(), g2.Serialized())
	}
	if target, ok := g.Lookup("トレーナー"); !ok || target != "Trainer" {
		t.Fatalf("lookup failed: %q %v", target, ok)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glossary.json")
	if err := os.WriteFile(path, []byte("[1,2]"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error for non-object glossary")
	}
}
