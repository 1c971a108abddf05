// Package stemmer reduces word tokens to approximate root forms.
//
// The default implementation is a fixed, order-sensitive suffix table:
// crude compared to a full morphological analyzer, but allocation-light
// and O(1) per word, which is what the ranking hot path wants. A
// Snowball-backed stemmer is available as an alternative.
package stemmer

import "strings"

// Stemmer maps a word to its stem. Implementations must lower-case the
// input; callers are allowed to pass raw tokens.
type Stemmer interface {
	Stem(word string) string
}

// rule strips suffix (and appends replace, if any) when the word is
// strictly longer than minLen. Rules are evaluated in order; the first
// match wins.
type rule struct {
	suffix  string
	minLen  int
	replace string
}

var rules = []rule{
	{suffix: "ies", minLen: 4, replace: "y"},
	{suffix: "es", minLen: 4},
	{suffix: "s", minLen: 3},
	{suffix: "ing", minLen: 5},
	{suffix: "ed", minLen: 4},
	{suffix: "er", minLen: 4},
	{suffix: "est", minLen: 5},
	{suffix: "ly", minLen: 4},
	{suffix: "tion", minLen: 6},
	{suffix: "ness", minLen: 6},
	{suffix: "ment", minLen: 6},
}

// Suffix is the suffix-table stemmer. The zero value is ready to use.
type Suffix struct{}

// Stem lower-cases word and applies the first matching suffix rule.
// Words shorter than three characters are returned unchanged (apart
// from case folding), as are words no rule matches.
func (Suffix) Stem(word string) string {
	w := strings.ToLower(word)
	if len(w) < 3 {
		return w
	}
	for _, r := range rules {
		if len(w) > r.minLen && strings.HasSuffix(w, r.suffix) {
			return w[:len(w)-len(r.suffix)] + r.replace
		}
	}
	return w
}

// New returns the stemmer registered under name. Unknown names fall
// back to the suffix-table stemmer.
func New(name string) Stemmer {
	switch name {
	case "snowball":
		return Snowball{}
	default:
		return Suffix{}
	}
}
