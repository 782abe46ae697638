package testutil

import (
	"strings"
	"testing"
	"unicode"
)

// AssertCanonical checks the shape of rewrite pipeline output: no upper
// case, no digits, single spaces and no surrounding whitespace.
func AssertCanonical(tb testing.TB, s string) {
	tb.Helper()

	if s != strings.TrimSpace(s) {
		tb.Errorf("canonical text %q has surrounding whitespace", s)
	}

	if strings.Contains(s, "  ") {
		tb.Errorf("canonical text %q has repeated spaces", s)
	}

	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			tb.Errorf("canonical text %q contains upper-case %q", s, r)
			return
		case unicode.IsDigit(r):
			tb.Errorf("canonical text %q contains digit %q", s, r)
			return
		case unicode.IsSpace(r) && r != ' ':
			tb.Errorf("canonical text %q contains whitespace %q", s, r)
			return
		}
	}
}
