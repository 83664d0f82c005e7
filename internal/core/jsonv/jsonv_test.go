package jsonv

import (
	"reflect"
	"testing"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		in   string
		want Kind
	}{
		{`null`, KindNull},
		{`true`, KindBool},
		{`1.5`, KindNumber},
		{`"x"`, KindString},
		{`[1]`, KindArray},
		{`{"a":1}`, KindObject},
	}
	for _, c := range cases {
		v, err := Decode([]byte(c.in))
		if err != nil {
			t.Fatalf("decode %s: %v", c.in, err)
		}
		if got := KindOf(v); got != c.want {
			t.Fatalf("KindOf(%s) = %s, want %s", c.in, got, c.want)
		}
	}
	if KindOf(struct{}{}) != KindInvalid {
		t.Fatalf("struct should be invalid")
	}
}

func TestDecode_Errors(t *testing.T) {
	if _, err := Decode([]byte(`{"a":`)); err == nil {
		t.Fatalf("expected syntax error")
	}
	if _, err := Decode([]byte(`{} {}`)); err != ErrTrailingData {
		t.Fatalf("expected ErrTrailingData, got %v", err)
	}
	if _, err := Decode([]byte(``)); err == nil {
		t.Fatalf("expected error on empty input")
	}
}

func TestIsInteger(t *testing.T) {
	if !IsInteger(float64(3)) || IsInteger(2.5) || IsInteger("3") {
		t.Fatalf("IsInteger mismatch")
	}
}

func TestStrings(t *testing.T) {
	if got, ok := Strings([]any{"a", "b"}); !ok || !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("Strings = %v %v", got, ok)
	}
	if _, ok := Strings([]any{"a", 1.0}); ok {
		t.Fatalf("mixed sequence should not be text")
	}
	if _, ok := Strings([]any{}); ok {
		t.Fatalf("empty sequence should not be text")
	}
}

func TestClone_IsDeep(t *testing.T) {
	src := map[string]any{"a": []any{map[string]any{"b": "c"}}}
	cp := Clone(src).(map[string]any)
	cp["a"].([]any)[0].(map[string]any)["b"] = "changed"
	if src["a"].([]any)[0].(map[string]any)["b"] != "c" {
		t.Fatalf("clone shares nested state")
	}
}

func TestMergePatch(t *testing.T) {
	target := map[string]any{
		"projectName": "Old",
		"features":    []any{"a", "b"},
		"outputPrefs": map[string]any{"proposalStyle": "Friendly", "includePricing": true},
		"clientEmail": "x@example.com",
	}
	patch := map[string]any{
		"projectName": "New",
		"features":    []any{"c"},
		"outputPrefs": map[string]any{"includePricing": false},
		"clientEmail": nil,
	}
	got := MergePatch(target, patch).(map[string]any)

	want := map[string]any{
		"projectName": "New",
		"features":    []any{"c"},
		"outputPrefs": map[string]any{"proposalStyle": "Friendly", "includePricing": false},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("MergePatch = %#v", got)
	}
	if target["projectName"] != "Old" || target["clientEmail"] == nil {
		t.Fatalf("target was modified: %#v", target)
	}
}

func TestMergePatch_NonObjectPatchReplaces(t *testing.T) {
	if got := MergePatch(map[string]any{"a": 1.0}, "x"); got != "x" {
		t.Fatalf("scalar patch = %#v", got)
	}
	got := MergePatch("scalar", map[string]any{"a": 1.0, "b": nil})
	if !reflect.DeepEqual(got, map[string]any{"a": 1.0}) {
		t.Fatalf("object over scalar = %#v", got)
	}
}
