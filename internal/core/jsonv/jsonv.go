// Package jsonv is a tagged view over JSON decoded into any
//
// Values are whatever encoding/json produces for an any target: nil, bool,
// float64, string, []any and map[string]any. Helpers never panic on a shape
// mismatch; they report it through the ok result instead.
package jsonv

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
)

// Kind tags a loose JSON value
type Kind uint8

const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// KindOf classifies v
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case float64, float32, int, int32, int64, json.Number:
		return KindNumber
	case string:
		return KindString
	case []any:
		return KindArray
	case map[string]any:
		return KindObject
	default:
		return KindInvalid
	}
}

// ErrTrailingData is returned by Decode when more than one value is present
var ErrTrailingData = errors.New("jsonv: trailing data after value")

// Decode parses exactly one JSON value
func Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, ErrTrailingData
	}
	return v, nil
}

// Object returns v as a record
func Object(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// Array returns v as a sequence
func Array(v any) ([]any, bool) {
	a, ok := v.([]any)
	return a, ok
}

// String returns v as text
func String(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// Number returns v as a float64
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// IsInteger reports whether v is a number with no fractional part
func IsInteger(v any) bool {
	f, ok := Number(v)
	return ok && !math.IsInf(f, 0) && f == math.Trunc(f)
}

// Strings reports whether v is a non-empty sequence made only of text
func Strings(v any) ([]string, bool) {
	a, ok := Array(v)
	if !ok || len(a) == 0 {
		return nil, false
	}
	out := make([]string, 0, len(a))
	for _, e := range a {
		s, ok := e.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// Clone deep-copies records and sequences; scalars are shared
func Clone(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = Clone(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Clone(e)
		}
		return out
	default:
		return v
	}
}

// MergePatch applies a JSON merge patch to target and returns the result.
// Null members of patch delete keys; nested records merge recursively; any
// other patch value replaces the target wholesale. Neither input is modified.
func MergePatch(target, patch any) any {
	p, ok := patch.(map[string]any)
	if !ok {
		return Clone(patch)
	}
	t, ok := target.(map[string]any)
	if !ok {
		t = map[string]any{}
	}
	out := Clone(t).(map[string]any)
	for k, v := range p {
		if v == nil {
			delete(out, k)
			continue
		}
		out[k] = MergePatch(out[k], v)
	}
	return out
}
