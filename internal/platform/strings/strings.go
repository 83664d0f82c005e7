// Package strings holds small guards for names, route prefixes and defaults
package strings

import std "strings"

// IfEmpty returns def when in has no elements
func IfEmpty[T any](in, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustString panics with "<what> is required" when s is blank
func MustString(s, what string) string {
	if std.TrimSpace(s) == "" {
		panic(what + " is required")
	}
	return s
}

// MustPrefix normalizes a route prefix to one leading slash and no trailing one.
// The root itself is rejected.
func MustPrefix(s string) string {
	s = "/" + std.Trim(s, " /")
	if s == "/" {
		panic("route prefix is required")
	}
	return s
}
