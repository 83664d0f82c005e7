package normalize

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"scopegen/internal/core/jsonv"
	"scopegen/internal/core/scopedoc"
)

// alias copies a non-blank sibling into an absent or blank canonical key
func alias(from string) Fix {
	return func(root map[string]any, cur any, present bool) (any, bool) {
		if present && !blank(cur) {
			return nil, false
		}
		src, ok := root[from]
		if !ok || blank(src) {
			return nil, false
		}
		return src, true
	}
}

// list replaces anything that is not a sequence with an empty one
func list(_ map[string]any, cur any, _ bool) (any, bool) {
	if _, ok := jsonv.Array(cur); ok {
		return nil, false
	}
	return []any{}, true
}

// zero fills an absent number
func zero(_ map[string]any, cur any, present bool) (any, bool) {
	if present && cur != nil {
		return nil, false
	}
	return float64(0), true
}

// text fills absent text
func text(_ map[string]any, cur any, present bool) (any, bool) {
	if present && cur != nil {
		return nil, false
	}
	return "", true
}

// recordsFromStrings lifts a sequence made only of strings into records, keeping at most max
func recordsFromStrings(max int, build func(i int, s string) map[string]any) Fix {
	return func(_ map[string]any, cur any, _ bool) (any, bool) {
		ss, ok := jsonv.Strings(cur)
		if !ok {
			return nil, false
		}
		if len(ss) > max {
			ss = ss[:max]
		}
		out := make([]any, len(ss))
		for i, s := range ss {
			out[i] = build(i, s)
		}
		return out, true
	}
}

func milestone(i int, s string) map[string]any {
	return map[string]any{
		"name":         fmt.Sprintf("Milestone %d", i+1),
		"description":  s,
		"dueWeek":      float64(i + 1),
		"deliverables": []any{s},
	}
}

func risk(_ int, s string) map[string]any {
	return map[string]any{
		"risk":       s,
		"impact":     string(scopedoc.ImpactMedium),
		"mitigation": RiskMitigationPlaceholder,
	}
}

var impactLevels = []scopedoc.Impact{scopedoc.ImpactLow, scopedoc.ImpactMedium, scopedoc.ImpactHigh}

// impactCase rewrites impacts that match a known level up to case and spacing, e.g. "high"
func impactCase(_ map[string]any, cur any, _ bool) (any, bool) {
	risks, ok := jsonv.Array(cur)
	if !ok {
		return nil, false
	}
	fold := cases.Fold()
	changed := false
	for _, r := range risks {
		rec, ok := jsonv.Object(r)
		if !ok {
			continue
		}
		s, ok := jsonv.String(rec["impact"])
		if !ok {
			continue
		}
		key := fold.String(strings.TrimSpace(s))
		for _, lvl := range impactLevels {
			if key == fold.String(string(lvl)) && s != string(lvl) {
				rec["impact"] = string(lvl)
				changed = true
			}
		}
	}
	return risks, changed
}

// timeline forces a sequence of {phase, durationWeeks, whatHappens} records
func timeline(_ map[string]any, cur any, _ bool) (any, bool) {
	items, ok := jsonv.Array(cur)
	if !ok {
		return []any{}, true
	}
	out := make([]any, len(items))
	for i, item := range items {
		rec, _ := jsonv.Object(item)

		phase, ok := jsonv.String(rec["phase"])
		if !ok {
			phase = fmt.Sprintf("Phase %d", i+1)
			if i < len(timelinePhaseNames) {
				phase = timelinePhaseNames[i]
			}
		}
		weeks, ok := rec["durationWeeks"]
		if _, isNum := jsonv.Number(weeks); !ok || !isNum {
			weeks = float64(1)
		}
		what, ok := rec["whatHappens"]
		if _, isList := jsonv.Array(what); !ok || !isList {
			what = strs(timelineWhatHappens)
		}
		out[i] = map[string]any{
			"phase":         phase,
			"durationWeeks": weeks,
			"whatHappens":   what,
		}
	}
	return out, true
}

func blank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

func strs(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
