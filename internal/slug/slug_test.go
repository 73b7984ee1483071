package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Deep House Mix", "deep-house-mix"},
		{"PlayLSD: Sunrise Rituals!", "playlsd-sunrise-rituals"},
		{"  Spaced   Out  ", "spaced-out"},
		{"already-hyphenated title", "already-hyphenated-title"},
		{"--- leading & trailing ---", "leading-trailing"},
		{"ALL CAPS 2024", "all-caps-2024"},
		{"", ""},
		{"???", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Make(tc.title), "title %q", tc.title)
	}
}

func TestMakeCollapsesHyphenRuns(t *testing.T) {
	assert.Equal(t, "a-b", Make("a -- b"))
	assert.Equal(t, "a-b", Make("a - - b"))
}

func TestUniquify(t *testing.T) {
	existing := map[string]bool{
		"deep-house-mix":   true,
		"deep-house-mix-1": true,
	}
	taken := func(s string) bool { return existing[s] }

	assert.Equal(t, "sunrise-rituals", Uniquify("sunrise-rituals", taken))
	assert.Equal(t, "deep-house-mix-2", Uniquify("deep-house-mix", taken))
}

func TestUniquifyPicksSmallestFreeSuffix(t *testing.T) {
	existing := map[string]bool{
		"mix":   true,
		"mix-2": true,
	}
	taken := func(s string) bool { return existing[s] }

	// -1 is free even though -2 is taken.
	assert.Equal(t, "mix-1", Uniquify("mix", taken))
}
