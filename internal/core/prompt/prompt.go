// Package prompt builds the instruction and payload text sent to the generation backend
package prompt

import (
	"encoding/json"
	"strings"

	"scopegen/internal/core/intake"
	"scopegen/internal/core/scopedoc"
)

// Per-field caps applied to intake lists before they are embedded.
// Clamping keeps the first N entries in their original order.
const (
	MaxUserTypes      = 8
	MaxRoles          = 10
	MaxFeatures       = 15
	MaxReferenceLinks = 6
	MaxRiskFlags      = 10
)

const instructionsFirst = `You write a scope of work as strict JSON.

Rules:
- Return exactly one JSON object and nothing else: no markdown, no code fences, no commentary.
- Use exactly the keys and nesting of the JSON TEMPLATE. Do not rename, add, or omit keys.
- Every array must contain at least one item.
- timeline is an array of objects with phase, durationWeeks, whatHappens.
- milestones is an array of objects with name, description, dueWeek, deliverables.
- risks is an array of objects with risk, impact (Low, Medium or High), mitigation.
- durationWeeks and dueWeek are whole numbers of at least 1.
- Keep the wording concise.`

const instructionsRetry = `You write a scope of work as strict JSON.

This is a second attempt. The previous answer was cut off or did not match the template.
- Be much more concise than usual.
- Keep every string short.
- Keep lists small, but never empty.

Rules:
- Return exactly one JSON object and nothing else.
- Use exactly the keys and nesting of the JSON TEMPLATE.`

// Instructions returns the system text for an attempt. Attempt 1 is the normal
// variant; any later attempt gets the compaction variant.
func Instructions(attempt int) string {
	if attempt <= 1 {
		return instructionsFirst
	}
	return instructionsRetry
}

// Clamp returns a copy of in with its unbounded lists capped
func Clamp(in intake.Intake) intake.Intake {
	in.UserTypes = head(in.UserTypes, MaxUserTypes)
	in.Roles = head(in.Roles, MaxRoles)
	in.Features = head(in.Features, MaxFeatures)
	in.ReferenceLinks = head(in.ReferenceLinks, MaxReferenceLinks)
	in.RiskFlags = head(in.RiskFlags, MaxRiskFlags)
	return in
}

// Payload bundles the template and the clamped intake as two labeled JSON blocks
func Payload(in intake.Intake, tmpl scopedoc.Document) (string, error) {
	t, err := json.MarshalIndent(tmpl, "", "  ")
	if err != nil {
		return "", err
	}
	i, err := json.MarshalIndent(Clamp(in), "", "  ")
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(t) + len(i) + 160)
	b.WriteString("Fill in the JSON TEMPLATE using the INTAKE. Keep the template structure and replace its values.\n\n")
	b.WriteString("JSON TEMPLATE:\n")
	b.Write(t)
	b.WriteString("\n\nINTAKE:\n")
	b.Write(i)
	return b.String(), nil
}

func head(ss []string, n int) []string {
	if ss == nil {
		return []string{}
	}
	if len(ss) > n {
		ss = ss[:n]
	}
	return append([]string(nil), ss...)
}
