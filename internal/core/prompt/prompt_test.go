package prompt

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"scopegen/internal/core/intake"
	"scopegen/internal/core/scopedoc"
)

func sampleIntake(userTypes int) intake.Intake {
	in := intake.Intake{
		ProjectName: "Acme Portal",
		Industry:    "Finance",
		ProjectType: "Web app (SaaS)",
		PrimaryGoal: "Automate operations",
		Deadline:    "1–2 months",
		BudgetRange: "$5k–$10k",
		OutputPrefs: intake.DefaultOutputPrefs(),
	}
	for i := 1; i <= userTypes; i++ {
		in.UserTypes = append(in.UserTypes, fmt.Sprintf("User type %02d", i))
	}
	return in
}

// splitPayload pulls the two JSON blocks back out of the payload text
func splitPayload(t *testing.T, payload string) (tmpl, in string) {
	t.Helper()
	_, rest, ok := strings.Cut(payload, "JSON TEMPLATE:\n")
	if !ok {
		t.Fatalf("payload missing template label")
	}
	tmpl, in, ok = strings.Cut(rest, "\n\nINTAKE:\n")
	if !ok {
		t.Fatalf("payload missing intake label")
	}
	return tmpl, in
}

func TestPayload_ClampsUserTypesKeepingOrder(t *testing.T) {
	src := sampleIntake(20)
	payload, err := Payload(src, scopedoc.Template())
	if err != nil {
		t.Fatalf("payload: %v", err)
	}
	_, inText := splitPayload(t, payload)

	var embedded intake.Intake
	if err := json.Unmarshal([]byte(inText), &embedded); err != nil {
		t.Fatalf("intake block is not JSON: %v", err)
	}
	if len(embedded.UserTypes) != MaxUserTypes {
		t.Fatalf("embedded %d user types, want %d", len(embedded.UserTypes), MaxUserTypes)
	}
	if !reflect.DeepEqual(embedded.UserTypes, src.UserTypes[:MaxUserTypes]) {
		t.Fatalf("embedded %v, want first %d of %v", embedded.UserTypes, MaxUserTypes, src.UserTypes)
	}
	if len(src.UserTypes) != 20 {
		t.Fatalf("Payload mutated the caller's intake")
	}
}

func TestPayload_EmbedsTemplateVerbatim(t *testing.T) {
	payload, err := Payload(sampleIntake(2), scopedoc.Template())
	if err != nil {
		t.Fatalf("payload: %v", err)
	}
	tmplText, _ := splitPayload(t, payload)
	var got scopedoc.Document
	if err := json.Unmarshal([]byte(tmplText), &got); err != nil {
		t.Fatalf("template block is not JSON: %v", err)
	}
	if !reflect.DeepEqual(got, scopedoc.Template()) {
		t.Fatalf("template block differs from Template()")
	}
}

func TestClamp_EachFieldHasItsOwnCap(t *testing.T) {
	many := func(n int) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = fmt.Sprintf("item %d", i)
		}
		return out
	}
	in := sampleIntake(0)
	in.UserTypes, in.Roles, in.Features = many(30), many(30), many(30)
	in.ReferenceLinks, in.RiskFlags = many(30), many(30)

	got := Clamp(in)
	cases := []struct {
		name string
		list []string
		max  int
	}{
		{"userTypes", got.UserTypes, MaxUserTypes},
		{"roles", got.Roles, MaxRoles},
		{"features", got.Features, MaxFeatures},
		{"referenceLinks", got.ReferenceLinks, MaxReferenceLinks},
		{"riskFlags", got.RiskFlags, MaxRiskFlags},
	}
	for _, c := range cases {
		if len(c.list) != c.max || c.list[0] != "item 0" || c.list[c.max-1] != fmt.Sprintf("item %d", c.max-1) {
			t.Fatalf("%s clamped to %v", c.name, c.list)
		}
	}
}

func TestClamp_ShortListsUntouchedAndNilBecomesEmpty(t *testing.T) {
	in := sampleIntake(3)
	got := Clamp(in)
	if !reflect.DeepEqual(got.UserTypes, in.UserTypes) {
		t.Fatalf("short list changed: %v", got.UserTypes)
	}
	if got.Roles == nil || len(got.Roles) != 0 {
		t.Fatalf("nil roles should clamp to empty, got %#v", got.Roles)
	}
}

func TestInstructions_Variants(t *testing.T) {
	first, retry := Instructions(1), Instructions(2)
	if first == retry {
		t.Fatalf("attempt 2 must use the compaction variant")
	}
	if !strings.Contains(retry, "concise") || !strings.Contains(retry, "never empty") {
		t.Fatalf("retry variant lacks compaction guidance: %q", retry)
	}
	if !strings.Contains(first, "at least one item") || !strings.Contains(first, "no code fences") {
		t.Fatalf("first variant lacks shape rules: %q", first)
	}
	if Instructions(0) != first {
		t.Fatalf("attempt 0 should use the normal variant")
	}
}
