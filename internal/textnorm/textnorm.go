// Package textnorm cleans text scraped from the MUFAP report pages.
//
// The pages mix non-breaking spaces, stray decoration characters and the
// occasional accented letter into names, so every name goes through Clean
// before it is compared with or written to the store.
package textnorm

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ASCII drops every rune outside the ASCII range.
func ASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)
}

// Fold decomposes s (NFKD), removes combining marks and drops whatever is
// still outside ASCII, so "Café" becomes "Cafe" rather than "Caf".
func Fold(s string) (string, error) {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return "", fmt.Errorf("fold %q: %w", s, err)
	}
	return ASCII(out), nil
}

// Clean trims cutset characters and whitespace from both ends, drops non-ASCII
// runes and collapses internal whitespace runs into a single space.
func Clean(s, cutset string) string {
	s = strings.TrimSpace(strings.Trim(s, cutset))
	return strings.Join(strings.Fields(ASCII(s)), " ")
}
