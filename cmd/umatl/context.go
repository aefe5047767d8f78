package main

import (
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"umatl/internal/config"
	"umatl/internal/glossary"
	"umatl/internal/logging"
	"umatl/internal/services/backend"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	c.loggerOnce.Do(func() {
		c.logger, c.loggerErr = logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			OutputPaths: []string{
				"stderr",
				filepath.Join(cfg.Paths.LogDir, "umatl.log"),
			},
		})
	})
	return c.logger, c.loggerErr
}

// newBackendClient loads the glossary and builds a translation client from the
// effective configuration.
func (c *commandContext) newBackendClient() (*backend.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	gloss, err := glossary.Load(cfg.Paths.GlossaryPath)
	if err != nil {
		return nil, err
	}
	client := backend.NewClient(backend.Config{
		URL:               cfg.Backend.URL,
		Model:             cfg.Backend.Model,
		Temperature:       cfg.Backend.Temperature,
		TopP:              cfg.Backend.TopP,
		TopK:              cfg.Backend.TopK,
		RepetitionPenalty: cfg.Backend.RepetitionPenalty,
		RetryAttempts:     cfg.Backend.RetryAttempts,
		TimeoutSeconds:    cfg.Backend.TimeoutSeconds,
	}, gloss, backend.WithLogger(logger))
	return client, nil
}
