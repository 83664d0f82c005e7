package scopedoc

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strings"

	"scopegen/internal/core/jsonv"
	"scopegen/internal/platform/validate"
)

// Violation is one failed schema constraint
type Violation struct {
	Path    string `json:"path"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	if v.Path == "" {
		return v.Rule + ": " + v.Message
	}
	return v.Path + " (" + v.Rule + "): " + v.Message
}

var documentType = reflect.TypeOf(Document{})

// maxWhole is the largest integer a float64 holds exactly
const maxWhole = 1 << 53

// Validate decides whether a loose JSON value is a conforming scope document.
// It reports every violation, with type mismatches first and rule failures
// after; a rule failure under a path that already has a type mismatch is not
// repeated.
func Validate(v any) (Document, []Violation) {
	var out []Violation
	checkShape(v, documentType, "", &out)

	b, err := json.Marshal(v)
	if err != nil {
		return Document{}, append(out, Violation{Rule: "json", Message: err.Error()})
	}
	var doc Document
	// type mismatches were collected above; decode the rest as best it can
	_ = json.Unmarshal(b, &doc)

	for _, is := range validate.Struct(doc) {
		if covered(out, is.Field) {
			continue
		}
		out = append(out, Violation{Path: is.Field, Rule: is.Rule, Message: is.Message})
	}
	if len(out) > 0 {
		return Document{}, out
	}
	if doc.TechStack.Integrations == nil {
		doc.TechStack.Integrations = []string{}
	}
	return doc, nil
}

// ValidateJSON is Validate over raw JSON text
func ValidateJSON(data []byte) (Document, []Violation) {
	v, err := jsonv.Decode(data)
	if err != nil {
		return Document{}, []Violation{{Rule: "json", Message: err.Error()}}
	}
	return Validate(v)
}

// Check validates an already typed document, e.g. a hand-edited one
func Check(doc Document) []Violation {
	b, err := json.Marshal(doc)
	if err != nil {
		return []Violation{{Rule: "json", Message: err.Error()}}
	}
	_, out := ValidateJSON(b)
	return out
}

// checkShape walks v against the json layout of t and records kind mismatches.
// Absent keys are left to the rule pass.
func checkShape(v any, t reflect.Type, path string, out *[]Violation) {
	switch t.Kind() {
	case reflect.Struct:
		m, ok := jsonv.Object(v)
		if !ok {
			*out = append(*out, typeViolation(path, "an object", v))
			return
		}
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := jsonName(f)
			val, present := m[name]
			if !present {
				continue
			}
			checkShape(val, f.Type, join(path, name), out)
		}
	case reflect.Slice:
		a, ok := jsonv.Array(v)
		if !ok {
			*out = append(*out, typeViolation(path, "an array", v))
			return
		}
		for i, e := range a {
			checkShape(e, t.Elem(), fmt.Sprintf("%s[%d]", path, i), out)
		}
	case reflect.String:
		if _, ok := jsonv.String(v); !ok {
			*out = append(*out, typeViolation(path, "a string", v))
		}
	case reflect.Int:
		n, ok := jsonv.Number(v)
		if !ok {
			*out = append(*out, typeViolation(path, "a number", v))
			return
		}
		if !jsonv.IsInteger(v) {
			*out = append(*out, Violation{Path: path, Rule: "integer", Message: leaf(path) + " must be a whole number"})
			return
		}
		if math.Abs(n) > maxWhole {
			*out = append(*out, Violation{Path: path, Rule: "range", Message: fmt.Sprintf("%s must be at most %d in magnitude", leaf(path), int64(maxWhole))})
		}
	}
}

func typeViolation(path, want string, got any) Violation {
	return Violation{
		Path:    path,
		Rule:    "type",
		Message: fmt.Sprintf("%s must be %s, got %s", leaf(path), want, jsonv.KindOf(got)),
	}
}

func covered(vs []Violation, path string) bool {
	for _, v := range vs {
		if v.Path == "" || v.Path == path ||
			strings.HasPrefix(path, v.Path+".") || strings.HasPrefix(path, v.Path+"[") {
			return true
		}
	}
	return false
}

func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if i := strings.IndexByte(tag, ','); i >= 0 {
		tag = tag[:i]
	}
	if tag == "" {
		return f.Name
	}
	return tag
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func leaf(path string) string {
	if path == "" {
		return "document"
	}
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i+1:]
	}
	return path
}
