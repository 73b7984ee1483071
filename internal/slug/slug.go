// Package slug derives URL-safe identifiers from post titles.
package slug

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	nonWordChars   = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
	hyphenRuns     = regexp.MustCompile(`-+`)
)

// Make converts a title into its canonical slug form: lower-cased, characters
// other than letters/digits/whitespace/hyphen stripped, whitespace runs
// collapsed to single hyphens, hyphen runs collapsed, leading and trailing
// hyphens trimmed. The algorithm is stable: externally shared URLs depend on it.
func Make(title string) string {
	s := strings.ToLower(title)
	s = nonWordChars.ReplaceAllString(s, "")
	s = whitespaceRuns.ReplaceAllString(s, "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Uniquify returns base if taken(base) is false, otherwise base-N for the
// smallest positive N that is free. Callers exclude the post being edited
// from the taken set.
func Uniquify(base string, taken func(string) bool) string {
	if !taken(base) {
		return base
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s-%d", base, n)
		if !taken(candidate) {
			return candidate
		}
	}
}
