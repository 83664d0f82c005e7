// Package llm picks and builds the generation backend from configuration
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"scopegen/internal/adapters/llm/gemini"
	"scopegen/internal/adapters/llm/openai"
	"scopegen/internal/core/generate"
	"scopegen/internal/platform/config"
)

// Provider names a backend implementation
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
	ProviderStub   Provider = "stub"
)

var defaultModels = map[Provider]string{
	ProviderOpenAI: "gpt-5-mini",
	ProviderGemini: "gemini-2.5-flash",
	ProviderStub:   "template-echo",
}

// Settings is the GENERATOR_* configuration
type Settings struct {
	Provider    Provider
	Model       string
	APIKey      string
	BaseURL     string
	Timeout     time.Duration
	FirstBudget int
	RetryBudget int
	Malformed   generate.MalformedPolicy
}

// Info is the client-safe description of the configured generator
type Info struct {
	Provider        string `json:"provider"`
	Model           string `json:"model"`
	Configured      bool   `json:"configured"`
	FirstBudget     int    `json:"first_budget"`
	RetryBudget     int    `json:"retry_budget"`
	MaxAttempts     int    `json:"max_attempts"`
	MalformedPolicy string `json:"malformed_policy"`
}

// FromConfig reads settings from c, normally config.New().Prefix("GENERATOR_").
// A missing API key is allowed; it surfaces as a configuration error on use.
func FromConfig(c config.Conf) Settings {
	p := Provider(strings.ToLower(c.MayEnum("PROVIDER", string(ProviderOpenAI),
		string(ProviderOpenAI), string(ProviderGemini), string(ProviderStub))))
	policy, _ := generate.ParseMalformedPolicy(c.MayEnum("MALFORMED_POLICY", "fail", "fail", "retry"))
	return Settings{
		Provider:    p,
		Model:       c.MayString("MODEL", defaultModels[p]),
		APIKey:      c.MayString("API_KEY", ""),
		BaseURL:     c.MayString("BASE_URL", ""),
		Timeout:     c.MayDuration("TIMEOUT", 120*time.Second),
		FirstBudget: c.MayInt("BUDGET_FIRST", generate.DefaultFirstBudget),
		RetryBudget: c.MayInt("BUDGET_RETRY", generate.DefaultRetryBudget),
		Malformed:   policy,
	}
}

// WithProvider switches provider; the model falls back to the provider's default
func (s Settings) WithProvider(p Provider, model string) Settings {
	p = Provider(strings.ToLower(strings.TrimSpace(string(p))))
	if p == "" {
		return s
	}
	if p != s.Provider && model == "" {
		model = defaultModels[p]
	}
	s.Provider = p
	if model != "" {
		s.Model = model
	}
	return s
}

// Options turns the settings into generator options
func (s Settings) Options() []generate.Option {
	return []generate.Option{
		generate.WithBudgets(s.FirstBudget, s.RetryBudget),
		generate.WithMalformedPolicy(s.Malformed),
	}
}

// Info describes the settings without secrets
func (s Settings) Info() Info {
	return Info{
		Provider:        string(s.Provider),
		Model:           s.Model,
		Configured:      s.Provider == ProviderStub || s.APIKey != "",
		FirstBudget:     s.FirstBudget,
		RetryBudget:     s.RetryBudget,
		MaxAttempts:     generate.MaxAttempts,
		MalformedPolicy: s.Malformed.String(),
	}
}

// New builds the backend named by s.Provider
func New(ctx context.Context, s Settings) (generate.Backend, error) {
	switch s.Provider {
	case ProviderOpenAI, "":
		return openai.NewClient(openai.Options{
			APIKey:  s.APIKey,
			BaseURL: s.BaseURL,
			Model:   s.Model,
			Timeout: s.Timeout,
		}), nil
	case ProviderGemini:
		return gemini.NewClient(ctx, gemini.Options{
			APIKey:  s.APIKey,
			BaseURL: s.BaseURL,
			Model:   s.Model,
			Timeout: s.Timeout,
		})
	case ProviderStub:
		return NewStub(), nil
	}
	return nil, fmt.Errorf("unknown generation provider %q", s.Provider)
}
