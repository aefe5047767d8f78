package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration for the translation pipeline.
type Paths struct {
	RawDir        string `toml:"raw_dir"`
	TranslatedDir string `toml:"translated_dir"`
	ArchiveDir    string `toml:"archive_dir"`
	LogDir        string `toml:"log_dir"`
	GlossaryPath  string `toml:"glossary_path"`
}

// Backend contains connection and sampling settings for the translation endpoint.
type Backend struct {
	URL               string  `toml:"url"`
	Model             string  `toml:"model"`
	Temperature       float64 `toml:"temperature"`
	TopP              float64 `toml:"top_p"`
	TopK              int     `toml:"top_k"`
	RepetitionPenalty float64 `toml:"repetition_penalty"`
	RetryAttempts     int     `toml:"retry_attempts"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
}

// Chara contains paths for the character system-text translation mode.
type Chara struct {
	SourcePath    string `toml:"source_path"`
	OutputPath    string `toml:"output_path"`
	ReferencePath string `toml:"reference_path"`
}

// MDB contains the location of the decrypted master database for text dumps.
type MDB struct {
	Path    string `toml:"path"`
	DumpDir string `toml:"dump_dir"`
}

// Extractor contains settings for the external asset-extraction binary.
type Extractor struct {
	Binary         string `toml:"binary"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for umatl.
//
// Sections by subsystem:
//   - Paths: input/output roots, archive dir, glossary location
//   - Backend: translation endpoint URL, model and sampling parameters
//   - Chara: character system-text source/output/reference paths
//   - MDB: master database dump settings
//   - Extractor: external asset-extraction binary
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Backend   Backend   `toml:"backend"`
	Chara     Chara     `toml:"chara"`
	MDB       MDB       `toml:"mdb"`
	Extractor Extractor `toml:"extractor"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/umatl/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized. The bool reports whether a file
// was actually found (defaults are used otherwise).
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("umatl.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a run writes into.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.TranslatedDir, c.Paths.ArchiveDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LockFilePath returns the flock path guarding concurrent runs over the same tree.
func (c *Config) LockFilePath() string {
	return filepath.Join(c.Paths.LogDir, "umatl.lock")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
