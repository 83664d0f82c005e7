// Package gemini is a Google Gemini backend for scope generation
package gemini

import (
	"context"
	"strings"
	"time"

	"google.golang.org/genai"

	"scopegen/internal/core/generate"
	perr "scopegen/internal/platform/errors"
	"scopegen/internal/platform/logger"
)

const modelDefault = "gemini-2.5-flash"

// Options configures the Client
type Options struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// models is the slice of genai.Models the backend uses
type models interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client implements generate.Backend with the genai SDK
type Client struct {
	models models
	opts   Options
	log    logger.Logger
	now    func() time.Time
}

// NewClient creates a Client. A missing key is not an error here; Complete
// reports it as a configuration error so startup never depends on it.
func NewClient(ctx context.Context, o Options) (*Client, error) {
	if o.Model == "" {
		o.Model = modelDefault
	}
	c := &Client{opts: o, log: *logger.Named("gemini"), now: time.Now}
	if strings.TrimSpace(o.APIKey) == "" {
		return c, nil
	}

	cfg := &genai.ClientConfig{APIKey: o.APIKey, Backend: genai.BackendGeminiAPI}
	if o.BaseURL != "" {
		cfg.HTTPOptions.BaseURL = o.BaseURL
	}
	if o.Timeout > 0 {
		cfg.HTTPOptions.Timeout = &o.Timeout
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeConfiguration, "gemini client init failed")
	}
	c.models = client.Models
	return c, nil
}

// Model returns the configured model name
func (c *Client) Model() string { return c.opts.Model }

// Complete sends one generateContent call in JSON mode
func (c *Client) Complete(ctx context.Context, r generate.Request) (generate.Completion, error) {
	if c.models == nil {
		return generate.Completion{}, &generate.ConfigurationError{Err: generate.ErrMissingCredential}
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(r.Instructions, genai.RoleUser),
		MaxOutputTokens:   int32(r.MaxOutputTokens),
		ResponseMIMEType:  "application/json",
	}

	start := c.now()
	resp, err := c.models.GenerateContent(ctx, c.opts.Model, genai.Text(r.Payload), cfg)
	lat := c.now().Sub(start)
	if err != nil {
		return generate.Completion{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "gemini generate failed")
	}

	ev := c.log.Debug().
		Str("model", c.opts.Model).
		Int("attempt", r.Attempt).
		Int("budget", r.MaxOutputTokens).
		Dur("latency", lat)
	if resp.UsageMetadata != nil {
		ev = ev.Int32("prompt_tokens", resp.UsageMetadata.PromptTokenCount).
			Int32("completion_tokens", resp.UsageMetadata.CandidatesTokenCount)
	}
	ev.Msg("gemini completion")

	if len(resp.Candidates) == 0 {
		return generate.Completion{Reason: generate.ReasonOther}, nil
	}
	return generate.Completion{Text: resp.Text(), Reason: reason(resp.Candidates[0].FinishReason)}, nil
}

func reason(fr genai.FinishReason) generate.CompletionReason {
	switch fr {
	case genai.FinishReasonStop:
		return generate.ReasonComplete
	case genai.FinishReasonMaxTokens:
		return generate.ReasonLength
	default:
		return generate.ReasonOther
	}
}
