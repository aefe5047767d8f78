package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	rawDir     string
	translated string
	archiveDir string
}

// setupCLITestEnv writes a complete config pointing every path under a temp
// dir and the backend at the given URL.
func setupCLITestEnv(t *testing.T, backendURL string) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "umatl.toml"),
		rawDir:     filepath.Join(base, "raw"),
		translated: filepath.Join(base, "translated"),
		archiveDir: filepath.Join(base, "updates"),
	}
	if err := os.MkdirAll(env.rawDir, 0o755); err != nil {
		t.Fatal(err)
	}

	content := fmt.Sprintf(`[paths]
raw_dir = %q
translated_dir = %q
archive_dir = %q
log_dir = %q

[backend]
url = %q
model = "test-model"
retry_attempts = 1

[chara]
source_path = %q
output_path = %q

[logging]
format = "json"
level = "error"
`,
		env.rawDir,
		env.translated,
		env.archiveDir,
		filepath.Join(base, "logs"),
		backendURL,
		filepath.Join(base, "chara_src.json"),
		filepath.Join(env.translated, "chara.json"),
	)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return env
}

// newEchoBackend answers every completion request with "EN:" + the user text.
func newEchoBackend(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		user := req.Messages[len(req.Messages)-1].Content
		fmt.Fprintf(w, `{"choices":[{"message":{"content":%q}}]}`, "EN:"+user)
	}))
	t.Cleanup(server.Close)
	return server
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func TestConfigInitCommand(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	// Second init without --overwrite must refuse.
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected an error for an existing config file")
	}
}

func TestTranslateCommandEndToEnd(t *testing.T) {
	server := newEchoBackend(t)
	env := setupCLITestEnv(t, server.URL)

	document := `{"title":"タイトル","text_block_list":[{"name":"","text":"こんにちは","choice_data_list":[]}]}`
	if err := os.WriteFile(filepath.Join(env.rawDir, "story_01.json"), []byte(document), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := runCLI(t, []string{"translate", "--archive"}, env.configPath)
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	requireContains(t, out, "translated=2")
	requireContains(t, out, "Archived 1 file(s)")

	translated, err := os.ReadFile(filepath.Join(env.translated, "story_01.json"))
	if err != nil {
		t.Fatalf("expected translated output: %v", err)
	}
	requireContains(t, string(translated), "EN:こんにちは")

	if _, err := os.Stat(filepath.Join(env.archiveDir, "update_1.zip")); err != nil {
		t.Fatalf("expected update_1.zip: %v", err)
	}

	// Second run skips the document and archives nothing.
	out, _, err = runCLI(t, []string{"translate", "--archive"}, env.configPath)
	if err != nil {
		t.Fatalf("second translate: %v", err)
	}
	requireContains(t, out, "skipped=1")
	if strings.Contains(out, "Archived") {
		t.Fatalf("second run must not archive: %q", out)
	}
}

func TestCharaCommand(t *testing.T) {
	server := newEchoBackend(t)
	env := setupCLITestEnv(t, server.URL)

	source := `{"1001":{"10":"おはよう"}}`
	if err := os.WriteFile(filepath.Join(env.baseDir, "chara_src.json"), []byte(source), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := runCLI(t, []string{"chara"}, env.configPath)
	if err != nil {
		t.Fatalf("chara: %v", err)
	}
	requireContains(t, out, "translated=1")

	table, err := os.ReadFile(filepath.Join(env.translated, "chara.json"))
	if err != nil {
		t.Fatalf("expected chara output: %v", err)
	}
	requireContains(t, string(table), "EN:おはよう")
}

func TestArchiveCommandResolvesRelativePaths(t *testing.T) {
	env := setupCLITestEnv(t, "http://127.0.0.1:1")

	target := filepath.Join(env.translated, "main", "a.json")
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(target, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := runCLI(t, []string{"archive", filepath.Join("main", "a.json")}, env.configPath)
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	requireContains(t, out, "update_1.zip")
}
