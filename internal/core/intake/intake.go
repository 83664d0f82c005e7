// Package intake validates raw client intake questionnaires into a canonical Intake
//
// Parsing is pure: the same input always yields the same Intake or the same
// list of issues. Absent list fields become empty lists and absent output
// preferences take their defaults field by field. Unknown keys are dropped.
package intake

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"scopegen/internal/core/jsonv"
	"scopegen/internal/platform/validate"
)

// Intake is one validated client engagement request
type Intake struct {
	ProjectName string `json:"projectName" validate:"required,min=2,max=120"`
	ClientName  string `json:"clientName,omitempty" validate:"max=120"`
	ClientEmail string `json:"clientEmail,omitempty" validate:"omitempty,email"`

	Industry    string `json:"industry" validate:"required,intake_industry"`
	ProjectType string `json:"projectType" validate:"required,intake_project_type"`
	PrimaryGoal string `json:"primaryGoal" validate:"required,intake_primary_goal"`

	Description string `json:"description,omitempty" validate:"omitempty,min=10,max=4000"`

	UserTypes []string `json:"userTypes" validate:"dive,min=2,max=50"`
	Roles     []string `json:"roles" validate:"dive,min=2,max=50"`
	Features  []string `json:"features" validate:"dive,min=2,max=80"`

	MustHaves   string `json:"mustHaves,omitempty" validate:"max=3000"`
	NiceToHaves string `json:"niceToHaves,omitempty" validate:"max=3000"`

	DesignPreference string   `json:"designPreference,omitempty" validate:"omitempty,intake_design_preference"`
	ReferenceLinks   []string `json:"referenceLinks" validate:"dive,url"`
	ScreensEstimate  string   `json:"screensEstimate,omitempty" validate:"omitempty,intake_screens_estimate"`

	Deadline    string `json:"deadline" validate:"required,intake_deadline"`
	BudgetRange string `json:"budgetRange" validate:"required,intake_budget_range"`

	RiskFlags []string `json:"riskFlags" validate:"dive,min=2,max=80"`

	OutputPrefs OutputPrefs `json:"outputPrefs"`
}

// OutputPrefs controls how the generated proposal is presented
type OutputPrefs struct {
	ProposalStyle    string `json:"proposalStyle" validate:"intake_proposal_style"`
	IncludePricing   bool   `json:"includePricing"`
	IncludeTechStack bool   `json:"includeTechStack"`
	IncludeTimeline  bool   `json:"includeTimeline"`
	ExportFormat     string `json:"exportFormat" validate:"intake_export_format"`
}

// DefaultOutputPrefs is what an intake gets when outputPrefs is absent
func DefaultOutputPrefs() OutputPrefs {
	return OutputPrefs{
		ProposalStyle:    "Friendly",
		IncludePricing:   true,
		IncludeTechStack: true,
		IncludeTimeline:  true,
		ExportFormat:     "PDF",
	}
}

// ValidationError lists every offending intake field
type ValidationError struct {
	Issues []validate.Issue
}

func (e *ValidationError) Error() string {
	return "invalid intake: " + validate.Summary(e.Issues)
}

// Parse validates an already decoded record
func Parse(raw map[string]any) (Intake, error) {
	if raw == nil {
		raw = map[string]any{}
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return Intake{}, &ValidationError{Issues: []validate.Issue{{Rule: "json", Message: err.Error()}}}
	}
	return ParseJSON(b)
}

var intakeType = reflect.TypeOf(Intake{})

// ParseJSON validates a JSON object. Every mistyped field is reported once;
// rule failures under a mistyped field are not repeated.
func ParseJSON(data []byte) (Intake, error) {
	v, err := jsonv.Decode(data)
	if err != nil {
		return Intake{}, &ValidationError{Issues: []validate.Issue{{Rule: "json", Message: "intake is not valid JSON: " + err.Error()}}}
	}
	raw, ok := jsonv.Object(v)
	if !ok {
		return Intake{}, &ValidationError{Issues: []validate.Issue{{Rule: "type", Message: "intake must be an object, got " + jsonv.KindOf(v).String()}}}
	}

	var issues []validate.Issue
	checkTypes(raw, intakeType, "", &issues)

	b, err := json.Marshal(raw)
	if err != nil {
		return Intake{}, &ValidationError{Issues: append(issues, validate.Issue{Rule: "json", Message: err.Error()})}
	}
	in := Intake{OutputPrefs: DefaultOutputPrefs()}
	if err := json.Unmarshal(b, &in); err != nil {
		return Intake{}, &ValidationError{Issues: append(issues, validate.Issue{Rule: "json", Message: err.Error()})}
	}

	in = canonical(in)
	for _, is := range validate.Struct(in) {
		if !covered(issues, is.Field) {
			issues = append(issues, is)
		}
	}
	if len(issues) > 0 {
		return Intake{}, &ValidationError{Issues: issues}
	}
	return in, nil
}

// checkTypes records a type issue for every key of m whose value does not fit
// the json layout of t, and drops that key so the rest decodes cleanly.
// Null members count as absent.
func checkTypes(m map[string]any, t reflect.Type, prefix string, out *[]validate.Issue) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := jsonName(f)
		val, present := m[name]
		if !present || val == nil {
			continue
		}
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}
		if f.Type.Kind() == reflect.Struct {
			if sub, ok := jsonv.Object(val); ok {
				checkTypes(sub, f.Type, path, out)
				continue
			}
		} else if fits(val, f.Type.Kind()) {
			continue
		}
		*out = append(*out, validate.Issue{
			Field:   path,
			Rule:    "type",
			Message: fmt.Sprintf("%s must be %s, got %s", name, describe(f.Type.Kind()), shapeOf(val, f.Type.Kind())),
		})
		delete(m, name)
	}
}

func fits(v any, k reflect.Kind) bool {
	switch k {
	case reflect.String:
		_, ok := jsonv.String(v)
		return ok
	case reflect.Bool:
		_, ok := v.(bool)
		return ok
	case reflect.Slice:
		a, ok := jsonv.Array(v)
		if !ok {
			return false
		}
		for _, e := range a {
			if _, ok := jsonv.String(e); !ok {
				return false
			}
		}
		return true
	}
	return false
}

// shapeOf names what was sent, calling out a list with non-text items
func shapeOf(v any, want reflect.Kind) string {
	if _, ok := jsonv.Array(v); ok && want == reflect.Slice {
		return "a list with non-text items"
	}
	return jsonv.KindOf(v).String()
}

func covered(issues []validate.Issue, field string) bool {
	for _, is := range issues {
		if is.Field == field || strings.HasPrefix(field, is.Field+".") || strings.HasPrefix(field, is.Field+"[") {
			return true
		}
	}
	return false
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" {
		return f.Name
	}
	return name
}

// MustParseJSON is ParseJSON for fixtures; it panics on invalid input
func MustParseJSON(data []byte) Intake {
	in, err := ParseJSON(data)
	if err != nil {
		panic(err)
	}
	return in
}

// canonical trims and NFC-normalizes text and turns absent lists into empty ones
func canonical(in Intake) Intake {
	in.ProjectName = cleanLabel(in.ProjectName)
	in.ClientName = cleanLabel(in.ClientName)
	in.ClientEmail = strings.TrimSpace(in.ClientEmail)
	in.Industry = cleanLabel(in.Industry)
	in.ProjectType = cleanLabel(in.ProjectType)
	in.PrimaryGoal = cleanLabel(in.PrimaryGoal)
	in.Description = cleanText(in.Description)
	in.MustHaves = cleanText(in.MustHaves)
	in.NiceToHaves = cleanText(in.NiceToHaves)
	in.DesignPreference = cleanLabel(in.DesignPreference)
	in.ScreensEstimate = cleanLabel(in.ScreensEstimate)
	in.Deadline = cleanLabel(in.Deadline)
	in.BudgetRange = cleanLabel(in.BudgetRange)
	in.OutputPrefs.ProposalStyle = cleanLabel(in.OutputPrefs.ProposalStyle)
	in.OutputPrefs.ExportFormat = cleanLabel(in.OutputPrefs.ExportFormat)

	in.UserTypes = cleanLabels(in.UserTypes)
	in.Roles = cleanLabels(in.Roles)
	in.Features = cleanLabels(in.Features)
	in.RiskFlags = cleanLabels(in.RiskFlags)
	in.ReferenceLinks = cleanLinks(in.ReferenceLinks)
	return in
}

func cleanLabels(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = cleanLabel(s)
	}
	return out
}

func cleanLinks(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

func describe(k reflect.Kind) string {
	switch k {
	case reflect.String:
		return "a string"
	case reflect.Slice:
		return "a list of strings"
	case reflect.Bool:
		return "a boolean"
	case reflect.Struct:
		return "an object"
	default:
		return k.String()
	}
}
