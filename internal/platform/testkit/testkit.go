// Package testkit holds helpers shared by package tests
package testkit

import (
	"strings"
	"testing"
)

// MustPanic fails t unless fn panics, and returns what was recovered
func MustPanic(t *testing.T, fn func()) (recovered any) {
	t.Helper()
	defer func() {
		recovered = recover()
		if recovered == nil {
			t.Fatal("expected a panic")
		}
	}()
	fn()
	return nil
}

// MustContain fails t unless needle occurs in haystack; long haystacks are logged whole
func MustContain(t *testing.T, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		return
	}
	if len(haystack) > 200 {
		t.Log(haystack)
		haystack = haystack[:200] + "..."
	}
	t.Fatalf("%q not found in %q", needle, haystack)
}
