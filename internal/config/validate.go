package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate checks cross-field constraints after normalization.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Paths.RawDir) == "" {
		problems = append(problems, "paths.raw_dir must be set")
	}
	if strings.TrimSpace(c.Paths.TranslatedDir) == "" {
		problems = append(problems, "paths.translated_dir must be set")
	}
	if c.Paths.RawDir != "" && c.Paths.RawDir == c.Paths.TranslatedDir {
		problems = append(problems, "paths.translated_dir must differ from paths.raw_dir")
	}

	if c.Backend.URL == "" {
		problems = append(problems, "backend.url must be set")
	} else if parsed, err := url.Parse(c.Backend.URL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		problems = append(problems, fmt.Sprintf("backend.url %q is not a valid http(s) URL", c.Backend.URL))
	}
	if c.Backend.RetryAttempts < 0 {
		problems = append(problems, "backend.retry_attempts must be >= 0")
	}
	if c.Backend.TimeoutSeconds < 0 {
		problems = append(problems, "backend.timeout_seconds must be >= 0")
	}
	if c.Backend.Temperature < 0 || c.Backend.Temperature > 2 {
		problems = append(problems, "backend.temperature must be between 0 and 2")
	}
	if c.Backend.TopP < 0 || c.Backend.TopP > 1 {
		problems = append(problems, "backend.top_p must be between 0 and 1")
	}

	switch strings.ToLower(c.Logging.Format) {
	case "", "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format %q is not one of console, json", c.Logging.Format))
	}

	if len(problems) == 0 {
		return nil
	}
	return errors.New("invalid configuration: " + strings.Join(problems, "; "))
}
