// Package testutil provides shared test helpers for the lison packages.
package testutil

import (
	"slices"
	"strings"
	"testing"
)

// Error is satisfied by lexer and parser errors.
type Error interface {
	GetError() string
	String() string
}

// ContainsSubstring reports whether needle occurs in haystack, ignoring case.
func ContainsSubstring(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// describe lists errs one per line with their positions.
func describe[E Error](errs []E) string {
	if len(errs) == 0 {
		return "none"
	}

	var sb strings.Builder
	for _, err := range errs {
		sb.WriteString("\n\t")
		sb.WriteString(err.String())
	}

	return sb.String()
}

func AssertNoErrors[E Error](t *testing.T, errs []E) {
	t.Helper()

	if len(errs) > 0 {
		t.Errorf("Expected no errors, got:%s", describe(errs))
	}
}

// AssertErrorCount stops the test when the count is wrong: later checks
// usually index into errs.
func AssertErrorCount[E Error](t *testing.T, errs []E, expected int) {
	t.Helper()

	if len(errs) != expected {
		t.Fatalf("Expected %d error(s), got %d: %s", expected, len(errs), describe(errs))
	}
}

func AssertErrorContains[E Error](t *testing.T, errs []E, expected string) {
	t.Helper()

	if !HasErrorContaining(errs, expected) {
		t.Errorf("Expected an error containing %q, got: %s", expected, describe(errs))
	}
}

// HasErrorContaining reports whether the message of any error contains
// expected, ignoring case.
func HasErrorContaining[E Error](errs []E, expected string) bool {
	return slices.ContainsFunc(errs, func(err E) bool {
		return ContainsSubstring(err.GetError(), expected)
	})
}
