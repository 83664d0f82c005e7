// Package normalize repairs near-conformant backend output toward the scope document layout
//
// Repairs are content preserving: keys are aliased, missing containers are
// created and strings are lifted into records, but no business text is
// invented beyond the fixed placeholders documented on each rule. Normalize
// never fails; input it cannot read degrades to those defaults and is left
// for the schema to reject.
package normalize

import (
	"strings"

	"scopegen/internal/core/jsonv"
)

// Fix repairs the value at a rule's path. cur is the current value and
// present reports whether the key exists. The root record is passed for
// rules that read sibling keys. set false leaves the key untouched.
type Fix func(root map[string]any, cur any, present bool) (next any, set bool)

// Rule is one repair bound to a dotted path from the document root.
// Missing or non-record parents along the path are replaced with empty records.
type Rule struct {
	Name string
	Path string
	Fix  Fix
}

const (
	maxMilestonesFromStrings = 5
	maxRisksFromStrings      = 6

	// RiskMitigationPlaceholder is the mitigation given to risks that arrive as bare strings
	RiskMitigationPlaceholder = "Mitigate via clear requirements, checkpoints, and staged rollout."
)

var (
	timelinePhaseNames  = []string{"Discovery", "Build", "QA & Launch"}
	timelineWhatHappens = []string{"Define scope", "Implement features", "Test + deploy"}
)

// rules run in order, though each only touches its own path
var rules = []Rule{
	{Name: "alias title", Path: "projectTitle", Fix: alias("title")},
	{Name: "alias summary", Path: "executiveSummary", Fix: alias("summary")},
	{Name: "alias problem", Path: "problemStatement", Fix: alias("problem")},

	{Name: "list goals", Path: "goals", Fix: list},
	{Name: "list userTypes", Path: "userTypes", Fix: list},
	{Name: "list nonGoals", Path: "nonGoals", Fix: list},
	{Name: "list assumptions", Path: "assumptions", Fix: list},
	{Name: "list dependencies", Path: "dependencies", Fix: list},
	{Name: "list deliverables", Path: "deliverables", Fix: list},
	{Name: "list acceptanceCriteria", Path: "acceptanceCriteria", Fix: list},
	{Name: "list nextSteps", Path: "nextSteps", Fix: list},
	{Name: "list milestones", Path: "milestones", Fix: list},
	{Name: "list risks", Path: "risks", Fix: list},

	{Name: "milestones from strings", Path: "milestones", Fix: recordsFromStrings(maxMilestonesFromStrings, milestone)},
	{Name: "risks from strings", Path: "risks", Fix: recordsFromStrings(maxRisksFromStrings, risk)},
	{Name: "risk impact case", Path: "risks", Fix: impactCase},

	{Name: "timeline records", Path: "timeline", Fix: timeline},

	{Name: "mvp features", Path: "mvp.features", Fix: list},
	{Name: "mvp userStories", Path: "mvp.userStories", Fix: list},
	{Name: "phase2 features", Path: "phase2.features", Fix: list},
	{Name: "scope inScope", Path: "scopeBoundaries.inScope", Fix: list},
	{Name: "scope outOfScope", Path: "scopeBoundaries.outOfScope", Fix: list},
	{Name: "pricing lowUSD", Path: "pricingEstimate.lowUSD", Fix: zero},
	{Name: "pricing highUSD", Path: "pricingEstimate.highUSD", Fix: zero},
	{Name: "pricing drivers", Path: "pricingEstimate.pricingDrivers", Fix: list},
	{Name: "pricing schedule", Path: "pricingEstimate.paymentScheduleSuggestion", Fix: text},
	{Name: "tech frontend", Path: "techStack.frontend", Fix: list},
	{Name: "tech backend", Path: "techStack.backend", Fix: list},
	{Name: "tech database", Path: "techStack.database", Fix: list},
	{Name: "tech auth", Path: "techStack.auth", Fix: list},
	{Name: "tech hosting", Path: "techStack.hosting", Fix: list},
	{Name: "tech integrations", Path: "techStack.integrations", Fix: list},
}

// Rules returns the repair rules in application order
func Rules() []Rule { return append([]Rule(nil), rules...) }

// Normalize returns a repaired copy of v; v itself is not modified
func Normalize(v any) any {
	root, ok := jsonv.Object(jsonv.Clone(v))
	if !ok {
		root = map[string]any{}
	}
	for _, r := range rules {
		r.Apply(root)
	}
	return root
}

// Apply runs the rule against root in place
func (r Rule) Apply(root map[string]any) {
	keys := strings.Split(r.Path, ".")
	parent := root
	for _, k := range keys[:len(keys)-1] {
		child, ok := jsonv.Object(parent[k])
		if !ok {
			child = map[string]any{}
			parent[k] = child
		}
		parent = child
	}
	last := keys[len(keys)-1]
	cur, present := parent[last]
	if next, set := r.Fix(root, cur, present); set {
		parent[last] = next
	}
}
