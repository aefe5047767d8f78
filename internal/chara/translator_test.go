package chara

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"umatl/internal/services"
)

type stubClient struct {
	calls  []string
	failOn string
}

func (s *stubClient) Translate(_ context.Context, text string) (string, error) {
	s.calls = append(s.calls, text)
	if s.failOn != "" && text == s.failOn {
		return "", services.Wrap(services.ErrTransport, "backend", "translate", "stub failure", nil)
	}
	return "EN:" + text, nil
}

func writeTable(t *testing.T, path string, table Table) {
	t.Helper()
	data, err := json.Marshal(table)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func readTable(t *testing.T, path string) Table {
	t.Helper()
	var table Table
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(data, &table); err != nil {
		t.Fatal(err)
	}
	return table
}

func TestTranslateTableWithoutReference(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "src.json")
	output := filepath.Join(dir, "out.json")

	writeTable(t, source, Table{
		"1001": {"10": "おはよう", "11": "こんばんは"},
	})

	client := &stubClient{}
	tr := NewTranslator(client, source, output, "", nil)
	result, err := tr.TranslateTable(context.Background())
	if err != nil {
		t.Fatalf("TranslateTable returned error: %v", err)
	}
	if result.Translated != 2 || result.Skipped != 0 || result.Failed != 0 {
		t.Fatalf("unexpected counters %+v", result)
	}

	out := readTable(t, output)
	if out["1001"]["10"] != "EN:おはよう" || out["1001"]["11"] != "EN:こんばんは" {
		t.Fatalf("unexpected output %v", out)
	}
}

func TestTranslateTableReferenceSkips(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "src.json")
	output := filepath.Join(dir, "out.json")
	reference := filepath.Join(dir, "ref.json")

	writeTable(t, source, Table{
		"1001": {"10": "おはよう", "11": "こんばんは"},
	})
	writeTable(t, reference, Table{
		"1001": {"10": "Good morning"},
	})

	client := &stubClient{}
	tr := NewTranslator(client, source, output, reference, nil)
	result, err := tr.TranslateTable(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if result.Skipped != 1 || result.Translated != 1 {
		t.Fatalf("unexpected counters %+v", result)
	}

	// The reference-hit entry must never reach the backend and must carry the
	// reference value verbatim.
	for _, call := range client.calls {
		if call == "おはよう" {
			t.Fatal("backend called for a reference-covered entry")
		}
	}
	out := readTable(t, output)
	if out["1001"]["10"] != "Good morning" {
		t.Fatalf("reference value not carried forward: %q", out["1001"]["10"])
	}
	if out["1001"]["11"] != "EN:こんばんは" {
		t.Fatalf("uncovered entry not translated: %q", out["1001"]["11"])
	}
}

func TestTranslateTableAllReferenceHitsStillWrites(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "src.json")
	output := filepath.Join(dir, "out.json")
	reference := filepath.Join(dir, "ref.json")

	writeTable(t, source, Table{"1": {"1": "テキスト"}})
	writeTable(t, reference, Table{"1": {"1": "Text"}})

	client := &stubClient{}
	tr := NewTranslator(client, source, output, reference, nil)
	result, err := tr.TranslateTable(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(client.calls) != 0 {
		t.Fatalf("expected zero backend calls, got %v", client.calls)
	}
	if result.Skipped != 1 {
		t.Fatalf("unexpected counters %+v", result)
	}
	if _, err := os.Stat(output); err != nil {
		t.Fatal("merged table must be written even when all entries are reference hits")
	}
}

func TestTranslateTableEntryFailureContinues(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "src.json")
	output := filepath.Join(dir, "out.json")

	writeTable(t, source, Table{
		"1": {"1": "壊れる", "2": "動く"},
	})

	client := &stubClient{failOn: "壊れる"}
	tr := NewTranslator(client, source, output, "", nil)
	result, err := tr.TranslateTable(context.Background())
	if err != nil {
		t.Fatalf("entry failures must not abort the table: %v", err)
	}
	if result.Failed != 1 || result.Translated != 1 {
		t.Fatalf("unexpected counters %+v", result)
	}

	out := readTable(t, output)
	if out["1"]["1"] != "壊れる" {
		t.Fatalf("failed entry should stay untranslated, got %q", out["1"]["1"])
	}
	if out["1"]["2"] != "EN:動く" {
		t.Fatalf("later entry should still translate, got %q", out["1"]["2"])
	}
}

func TestLoadReferenceDisabledCases(t *testing.T) {
	dir := t.TempDir()

	if ref, err := LoadReference(""); err != nil || ref != nil {
		t.Fatalf("empty path should disable referencing: %v %v", ref, err)
	}
	if ref, err := LoadReference(filepath.Join(dir, "missing.json")); err != nil || ref != nil {
		t.Fatalf("missing file should disable referencing: %v %v", ref, err)
	}

	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(empty, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if ref, err := LoadReference(empty); err != nil || ref != nil {
		t.Fatalf("empty table should disable referencing: %v %v", ref, err)
	}
}

func TestLookupTreatsNullAsAbsent(t *testing.T) {
	var table Table
	if err := json.Unmarshal([]byte(`{"1":{"1":null,"2":"ok"}}`), &table); err != nil {
		t.Fatal(err)
	}
	if _, ok := table.Lookup("1", "1"); ok {
		t.Fatal("null reference values must not count as hits")
	}
	if value, ok := table.Lookup("1", "2"); !ok || value != "ok" {
		t.Fatalf("expected hit, got %q %v", value, ok)
	}
}

func TestLoadTableMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`[1,2,3]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTable(path); !errors.Is(err, services.ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
}
