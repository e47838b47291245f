// Package strings provides small string helpers shared across services
package strings

import std "strings"

// IfEmpty returns def if in is empty, otherwise returns in
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustString returns s if it has non whitespace content otherwise panics
// name is used in the panic message so you can tell what was missing
func MustString(s string, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// Ptr returns a pointer to s, or nil if s is empty
func Ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the value of p or "" when nil
func Deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// OrDefault returns s unless it is all whitespace, in which case def
func OrDefault(s, def string) string {
	if std.TrimSpace(s) == "" {
		return def
	}
	return s
}

// Truncate shortens s to at most max runes, appending an ellipsis when cut
func Truncate(s string, max int) string {
	if max <= 3 {
		max = 3
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
