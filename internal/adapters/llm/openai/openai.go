// Package openai is a chat completions backend for scope generation
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"scopegen/internal/core/generate"
	perr "scopegen/internal/platform/errors"
	"scopegen/internal/platform/logger"
)

const (
	baseURLDefault = "https://api.openai.com/v1"
	modelDefault   = "gpt-5-mini"
	defaultTimeout = 120 * time.Second
)

// Options configures the Client
type Options struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration

	// HTTPClient overrides the transport, mainly for tests
	HTTPClient *http.Client
}

// Client implements generate.Backend over /chat/completions
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
	now  func() time.Time
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model               string         `json:"model"`
	Messages            []message      `json:"messages"`
	MaxCompletionTokens int            `json:"max_completion_tokens,omitempty"`
	ResponseFormat      responseFormat `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message      message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// NewClient creates a Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.Model == "" {
		o.Model = modelDefault
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	hc := o.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: o.Timeout}
	}
	return &Client{
		http: hc,
		opts: o,
		log:  *logger.Named("openai"),
		now:  time.Now,
	}
}

// Model returns the configured model name
func (c *Client) Model() string { return c.opts.Model }

// Complete sends one chat completion request in JSON mode
func (c *Client) Complete(ctx context.Context, r generate.Request) (generate.Completion, error) {
	if strings.TrimSpace(c.opts.APIKey) == "" {
		return generate.Completion{}, &generate.ConfigurationError{Err: generate.ErrMissingCredential}
	}

	body, err := json.Marshal(chatRequest{
		Model: c.opts.Model,
		Messages: []message{
			{Role: "system", Content: r.Instructions},
			{Role: "user", Content: r.Payload},
		},
		MaxCompletionTokens: r.MaxOutputTokens,
		ResponseFormat:      responseFormat{Type: "json_object"},
	})
	if err != nil {
		return generate.Completion{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "openai marshal request failed")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return generate.Completion{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "openai new request failed")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)

	start := c.now()
	resp, err := c.http.Do(req)
	lat := c.now().Sub(start)
	if err != nil {
		return generate.Completion{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "openai do failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		// read a small tail for diagnostics
		tail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		code := perr.ErrorCodeUnavailable
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			code = perr.ErrorCodeConfiguration
		}
		return generate.Completion{}, perr.Newf(code, "openai unexpected status %d body %s", resp.StatusCode, string(tail))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return generate.Completion{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "openai decode response failed")
	}

	c.log.Debug().
		Str("model", c.opts.Model).
		Int("attempt", r.Attempt).
		Int("budget", r.MaxOutputTokens).
		Int("prompt_tokens", out.Usage.PromptTokens).
		Int("completion_tokens", out.Usage.CompletionTokens).
		Dur("latency", lat).
		Msg("openai completion")

	if len(out.Choices) == 0 {
		return generate.Completion{Reason: generate.ReasonOther}, nil
	}
	ch := out.Choices[0]
	return generate.Completion{Text: ch.Message.Content, Reason: reason(ch.FinishReason)}, nil
}

func reason(finish string) generate.CompletionReason {
	switch finish {
	case "stop":
		return generate.ReasonComplete
	case "length":
		return generate.ReasonLength
	default:
		return generate.ReasonOther
	}
}
