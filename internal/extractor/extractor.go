// Package extractor wraps the external asset-extraction binary that pulls raw
// story JSON out of the game's asset bundles. The binary is a black box; this
// package only builds its argument list and relays its output.
package extractor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
	"time"

	"umatl/internal/logging"
	"umatl/internal/services"
)

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, onStdout func(string)) error
}

// Request names what to extract and where to put it.
type Request struct {
	AssetType string
	StoryID   string
	DestDir   string
	Overwrite bool
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client drives the extraction binary.
type Client struct {
	binary  string
	timeout time.Duration
	exec    Executor
	logger  *slog.Logger
}

// New constructs an extraction client.
func New(binary string, timeoutSeconds int, logger *slog.Logger, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, services.Wrap(services.ErrConfiguration, "extractor", "new", "extractor binary required", nil)
	}
	client := &Client{
		binary:  binary,
		timeout: time.Duration(timeoutSeconds) * time.Second,
		exec:    commandExecutor{},
		logger:  logging.NewComponentLogger(logger, "extractor"),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Extract runs one extraction, streaming the tool's stdout into the log.
func (c *Client) Extract(ctx context.Context, req Request) error {
	if req.DestDir == "" {
		return services.Wrap(services.ErrConfiguration, "extractor", "extract", "destination directory required", nil)
	}

	args := []string{"--output", req.DestDir}
	if req.AssetType != "" {
		args = append(args, "--type", req.AssetType)
	}
	if req.StoryID != "" {
		args = append(args, "--story-id", req.StoryID)
	}
	if req.Overwrite {
		args = append(args, "--overwrite")
	}

	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	c.logger.Info("extraction started",
		logging.String("binary", c.binary),
		logging.String("type", req.AssetType),
		logging.String("dest", req.DestDir))

	err := c.exec.Run(runCtx, c.binary, args, func(line string) {
		if strings.TrimSpace(line) == "" {
			return
		}
		c.logger.Info("extractor: " + line)
	})
	if err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return services.Wrap(services.ErrExternalTool, "extractor", "extract", "timed out", err)
		}
		return services.Wrap(services.ErrExternalTool, "extractor", "extract", c.binary, err)
	}

	c.logger.Info("extraction finished", logging.String("dest", req.DestDir))
	return nil
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string, onStdout func(string)) error {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start command: %w", err)
	}

	var wg sync.WaitGroup
	var scanErr error
	var once sync.Once

	scan := func(r io.Reader) {
		defer wg.Done()
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			if onStdout != nil {
				onStdout(scanner.Text())
			}
		}
		if err := scanner.Err(); err != nil {
			once.Do(func() { scanErr = err })
		}
	}

	wg.Add(2)
	go scan(stdout)
	go scan(stderr)
	wg.Wait()

	if err := cmd.Wait(); err != nil {
		return err
	}
	return scanErr
}
