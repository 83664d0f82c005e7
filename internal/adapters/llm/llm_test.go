package llm

import (
	"context"
	"testing"
	"time"

	"scopegen/internal/adapters/llm/gemini"
	"scopegen/internal/adapters/llm/openai"
	"scopegen/internal/core/generate"
	"scopegen/internal/core/intake"
	"scopegen/internal/core/scopedoc"
	"scopegen/internal/platform/config"
)

func TestFromConfig_Defaults(t *testing.T) {
	s := FromConfig(config.New().Prefix("GENERATOR_TEST_DEFAULTS_"))
	if s.Provider != ProviderOpenAI || s.Model != "gpt-5-mini" {
		t.Fatalf("settings = %+v", s)
	}
	if s.FirstBudget != generate.DefaultFirstBudget || s.RetryBudget != generate.DefaultRetryBudget {
		t.Fatalf("budgets = %d/%d", s.FirstBudget, s.RetryBudget)
	}
	if s.Malformed != generate.MalformedFail || s.Timeout != 120*time.Second {
		t.Fatalf("settings = %+v", s)
	}
	if s.Info().Configured {
		t.Fatalf("no key should report unconfigured")
	}
}

func TestFromConfig_Env(t *testing.T) {
	t.Setenv("GENERATOR_PROVIDER", "gemini")
	t.Setenv("GENERATOR_API_KEY", "secret")
	t.Setenv("GENERATOR_BUDGET_FIRST", "1000")
	t.Setenv("GENERATOR_BUDGET_RETRY", "2000")
	t.Setenv("GENERATOR_MALFORMED_POLICY", "retry")

	s := FromConfig(config.New().Prefix("GENERATOR_"))
	if s.Provider != ProviderGemini || s.Model != "gemini-2.5-flash" || s.APIKey != "secret" {
		t.Fatalf("settings = %+v", s)
	}
	info := s.Info()
	if !info.Configured || info.FirstBudget != 1000 || info.RetryBudget != 2000 || info.MalformedPolicy != "retry" {
		t.Fatalf("info = %+v", info)
	}
	if info.MaxAttempts != generate.MaxAttempts {
		t.Fatalf("max attempts = %d", info.MaxAttempts)
	}
}

func TestNew_Providers(t *testing.T) {
	ctx := context.Background()
	b, err := New(ctx, Settings{Provider: ProviderOpenAI})
	if _, ok := b.(*openai.Client); err != nil || !ok {
		t.Fatalf("openai: %T %v", b, err)
	}
	b, err = New(ctx, Settings{Provider: ProviderGemini})
	if _, ok := b.(*gemini.Client); err != nil || !ok {
		t.Fatalf("gemini: %T %v", b, err)
	}
	b, err = New(ctx, Settings{Provider: ProviderStub})
	if _, ok := b.(*Stub); err != nil || !ok {
		t.Fatalf("stub: %T %v", b, err)
	}
	if _, err := New(ctx, Settings{Provider: "carrier-pigeon"}); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}

func TestStub_EchoesTemplateThroughGenerator(t *testing.T) {
	in := intake.MustParseJSON([]byte(`{
		"projectName": "Acme Portal", "industry": "Finance", "projectType": "Web app (SaaS)",
		"primaryGoal": "Automate operations", "userTypes": ["Admins", "Customers"],
		"deadline": "1–2 months", "budgetRange": "$5k–$10k"
	}`))
	stub := NewStub()
	doc, err := generate.New(stub).GenerateScopeFromIntake(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if doc.ProjectTitle != scopedoc.Template().ProjectTitle || stub.Calls() != 1 {
		t.Fatalf("doc title %q calls %d", doc.ProjectTitle, stub.Calls())
	}
}

func TestStub_ReplaysAndRepeatsLast(t *testing.T) {
	stub := NewStub(
		generate.Completion{Reason: generate.ReasonLength},
		generate.Completion{Text: "{}", Reason: generate.ReasonComplete},
	)
	ctx := context.Background()
	for i, want := range []generate.CompletionReason{generate.ReasonLength, generate.ReasonComplete, generate.ReasonComplete} {
		got, err := stub.Complete(ctx, generate.Request{Attempt: i + 1})
		if err != nil || got.Reason != want {
			t.Fatalf("call %d = %+v %v", i, got, err)
		}
	}
	if reqs := stub.Requests(); len(reqs) != 3 || reqs[2].Attempt != 3 {
		t.Fatalf("requests = %+v", reqs)
	}
}

func TestSettings_WithProvider(t *testing.T) {
	base := Settings{Provider: ProviderOpenAI, Model: "gpt-custom"}

	if got := base.WithProvider("", ""); got != base {
		t.Fatalf("blank provider changed settings: %+v", got)
	}
	if got := base.WithProvider("Gemini", ""); got.Provider != ProviderGemini || got.Model != "gemini-2.5-flash" {
		t.Fatalf("switch = %+v", got)
	}
	if got := base.WithProvider("openai", ""); got.Model != "gpt-custom" {
		t.Fatalf("same provider lost model: %+v", got)
	}
	if got := base.WithProvider("stub", "x"); got.Provider != ProviderStub || got.Model != "x" {
		t.Fatalf("explicit model = %+v", got)
	}
}
