package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"umatl/internal/glossary"
	"umatl/internal/logging"
	"umatl/internal/services"
	"umatl/internal/textutil"
)

const (
	// corruptionSentinel marks degenerate generations some backends emit under
	// certain prompts. Its presence means the response is unusable but the
	// request itself succeeded, so the identical request is simply re-issued.
	corruptionSentinel = "###"

	defaultHTTPTimeout = 120 * time.Second
)

// Config captures the runtime settings required to talk to the translation endpoint.
type Config struct {
	URL               string
	Model             string
	Temperature       float64
	TopP              float64
	TopK              int
	RepetitionPenalty float64
	RetryAttempts     int
	TimeoutSeconds    int
}

// Client issues one chat-completion request per text unit. It holds no
// per-call mutable state; the prompt preamble is assembled once at
// construction from the glossary and reused for every call.
type Client struct {
	cfg          Config
	systemPrompt string
	httpClient   *http.Client
	logger       *slog.Logger
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger attaches a logger for retry diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logging.NewComponentLogger(logger, "backend")
		}
	}
}

// NewClient constructs a backend client using the supplied configuration and glossary.
func NewClient(cfg Config, gloss *glossary.Glossary, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg:          cfg,
		systemPrompt: BuildSystemPrompt(gloss),
		httpClient:   &http.Client{Timeout: timeout},
		logger:       logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type completionRequest struct {
	Model             string        `json:"model"`
	Temperature       float64       `json:"temperature"`
	TopP              float64       `json:"top_p"`
	TopK              int           `json:"top_k"`
	RepetitionPenalty float64       `json:"repetition_penalty"`
	Messages          []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Translate sends one text unit to the backend and returns its translation.
// Sentinel-corrupted responses are retried with the identical request, no
// backoff, up to RetryAttempts extra calls; exhaustion surfaces as
// services.ErrExhausted rather than a partial result. Transport failures are
// not retried.
func (c *Client) Translate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", services.Wrap(services.ErrMalformedInput, "backend", "translate", "empty text unit", nil)
	}

	payload := completionRequest{
		Model:             c.cfg.Model,
		Temperature:       c.cfg.Temperature,
		TopP:              c.cfg.TopP,
		TopK:              c.cfg.TopK,
		RepetitionPenalty: c.cfg.RepetitionPenalty,
		Messages: []chatMessage{
			{Role: "system", Content: c.systemPrompt},
			{Role: "user", Content: textutil.Normalize(text)},
		},
	}

	attempts := c.cfg.RetryAttempts + 1
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		content, err := c.sendOnce(ctx, payload)
		if err != nil {
			return "", err
		}
		if !strings.Contains(content, corruptionSentinel) {
			return content, nil
		}
		c.logger.Debug("corrupted response, retrying",
			logging.Int("attempt", attempt),
			logging.Int("max_attempts", attempts),
			logging.String("preview", textutil.Snippet(content, 60)))
	}

	return "", services.Wrap(services.ErrExhausted, "backend", "translate",
		fmt.Sprintf("no clean response after %d attempts", attempts), nil)
}

func (c *Client) sendOnce(ctx context.Context, payload completionRequest) (string, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", services.Wrap(services.ErrTransport, "backend", "translate", "encode request", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(encoded))
	if err != nil {
		return "", services.Wrap(services.ErrTransport, "backend", "translate", "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", services.Wrap(services.ErrTransport, "backend", "translate", "request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", services.Wrap(services.ErrTransport, "backend", "translate", "read body", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", services.Wrap(services.ErrTransport, "backend", "translate",
			fmt.Sprintf("http %d: %s", resp.StatusCode, textutil.Snippet(string(body), 160)), nil)
	}

	var completion completionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", services.Wrap(services.ErrTransport, "backend", "translate", "decode response", err)
	}
	if completion.Error != nil {
		return "", services.Wrap(services.ErrTransport, "backend", "translate",
			"api error: "+strings.TrimSpace(completion.Error.Message), nil)
	}
	if len(completion.Choices) == 0 {
		return "", services.Wrap(services.ErrTransport, "backend", "translate", "empty choices", nil)
	}
	content := completion.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", services.Wrap(services.ErrTransport, "backend", "translate", "empty content", nil)
	}
	return content, nil
}
