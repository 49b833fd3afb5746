package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize applies Unicode NFKC normalization and collapses runs of
// whitespace into single spaces
func Normalize(s string) string {
	s = norm.NFKC.String(s)
	return strings.Join(strings.Fields(s), " ")
}

// IsAllCaps reports whether s contains at least one cased letter and no
// lowercase letters. Digits and punctuation are ignored, so "SECTION 2."
// is all caps while "2." is not.
func IsAllCaps(s string) bool {
	cased := false
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			return false
		case unicode.IsUpper(r), unicode.IsTitle(r):
			cased = true
		}
	}
	return cased
}

// IsNumeric reports whether s, ignoring surrounding whitespace, is made of
// decimal digits only. Such spans are page numbers.
func IsNumeric(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// RuneLength returns the number of characters in s
func RuneLength(s string) int {
	return len([]rune(s))
}
