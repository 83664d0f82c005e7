package config

import (
	"testing"
	"time"

	kit "scopegen/internal/platform/testkit"
)

func TestPrefixesNest(t *testing.T) {
	gen := New().Prefix("GENERATOR_")
	if got := gen.key("MODEL"); got != "GENERATOR_MODEL" {
		t.Fatalf("key = %q", got)
	}
	if got := New().Prefix("CORE_").Prefix("TELEMETRY_").key("TABLE"); got != "CORE_TELEMETRY_TABLE" {
		t.Fatalf("nested key = %q", got)
	}
}

func TestMustString(t *testing.T) {
	c := New().Prefix("SERVICE_PGSQL_")
	t.Setenv("SERVICE_PGSQL_DBURL", "  postgres://db/scopegen ")
	if got := c.MustString("DBURL"); got != "postgres://db/scopegen" {
		t.Fatalf("MustString = %q", got)
	}
	t.Setenv("SERVICE_PGSQL_BLANK", "   ")
	kit.MustPanic(t, func() { _ = c.MustString("BLANK") })
	kit.MustPanic(t, func() { _ = c.MustString("ABSENT") })
}

func TestMayReaders(t *testing.T) {
	c := New().Prefix("GENERATOR_")
	t.Setenv("GENERATOR_MODEL", " gpt-4o-mini ")
	t.Setenv("GENERATOR_BUDGET_FIRST", "3000")
	t.Setenv("GENERATOR_BUDGET_RETRY", "lots")
	t.Setenv("GENERATOR_STRICT", "true")
	t.Setenv("GENERATOR_LOOSE", "sometimes")
	t.Setenv("GENERATOR_TIMEOUT", "90s")
	t.Setenv("GENERATOR_WAIT", "soon")

	cases := []struct {
		name string
		got  any
		want any
	}{
		{"string set", c.MayString("MODEL", "x"), "gpt-4o-mini"},
		{"string unset", c.MayString("BASE_URL", "https://api"), "https://api"},
		{"int set", c.MayInt("BUDGET_FIRST", 4500), 3000},
		{"int invalid", c.MayInt("BUDGET_RETRY", 6500), 6500},
		{"int unset", c.MayInt("NOPE", 7), 7},
		{"bool set", c.MayBool("STRICT", false), true},
		{"bool invalid", c.MayBool("LOOSE", false), false},
		{"duration set", c.MayDuration("TIMEOUT", time.Second), 90 * time.Second},
		{"duration invalid", c.MayDuration("WAIT", time.Minute), time.Minute},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("%s: got %v want %v", tc.name, tc.got, tc.want)
		}
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("CORE_API_")
	t.Setenv("CORE_API_CORS_ORIGINS", " https://a.example , ,https://b.example ")
	got := c.MayCSV("CORS_ORIGINS", nil)
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("MayCSV = %q", got)
	}

	t.Setenv("CORE_API_EMPTY", " , ,")
	if got := c.MayCSV("EMPTY", []string{"*"}); len(got) != 1 || got[0] != "*" {
		t.Fatalf("blank list should fall back, got %q", got)
	}
}

func TestMayEnum(t *testing.T) {
	c := New().Prefix("GENERATOR_")
	if got := c.MayEnum("PROVIDER", "openai", "openai", "gemini"); got != "openai" {
		t.Fatalf("default = %q", got)
	}
	t.Setenv("GENERATOR_PROVIDER", "Gemini")
	if got := c.MayEnum("PROVIDER", "openai", "openai", "gemini"); got != "Gemini" {
		t.Fatalf("case-insensitive match = %q", got)
	}
	if got := c.MayEnum("UNSET", "", "a"); got != "" {
		t.Fatalf("empty default = %q", got)
	}
	t.Setenv("GENERATOR_PROVIDER", "llama")
	kit.MustPanic(t, func() { _ = c.MayEnum("PROVIDER", "openai", "openai", "gemini") })
}
