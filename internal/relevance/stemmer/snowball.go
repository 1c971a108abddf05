package stemmer

import (
	"strings"

	"github.com/kljensen/snowball"
)

// Snowball wraps the Porter2 English stemmer. It trades the suffix
// table's fixed behavior for proper stem conflation; scores produced
// with it are not comparable to suffix-stemmed scores, so a corpus must
// be built and queried with the same stemmer.
type Snowball struct{}

// Stem applies the Snowball English stemmer with stop-word folding
// disabled. On stemmer failure the lower-cased input is returned, so
// the pipeline never loses a token.
func (Snowball) Stem(word string) string {
	s, err := snowball.Stem(word, "english", false)
	if err != nil || s == "" {
		return strings.ToLower(word)
	}
	return s
}
