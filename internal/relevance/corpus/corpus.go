// Package corpus owns the parsed representation of one source text: its
// sentence segmentation, the stemmed token stream of the whole text, and
// a memoized IDF table keyed by stemmed token.
//
// A Corpus is immutable after construction except for lazy fill-in of
// IDF entries for tokens that did not appear in the source. Fill-in uses
// the same formula as construction-time precomputation and is idempotent,
// so repeated lookups never change previously cached values.
package corpus

import (
	"math"
	"sync"

	"github.com/relevanced/relevanced/internal/relevance/stemmer"
	"github.com/relevanced/relevanced/internal/relevance/tokenizer"
)

// TokenStats bundles the diagnostic view of a single token. Token holds
// the stemmed form; TF and IDF are both computed against that stem.
type TokenStats struct {
	Token string  `json:"token"`
	TF    float64 `json:"tf"`
	IDF   float64 `json:"idf"`
}

// Corpus is the parsed, stemmed model of one source text.
type Corpus struct {
	stem      stemmer.Stemmer
	sentences []string   // sentence spans in source order
	docs      [][]string // stemmed tokens per sentence, parallel to sentences
	flat      []string   // stemmed tokens of the entire source text

	mu  sync.Mutex
	idf map[string]float64 // stem -> IDF, append-only
}

// Option configures a Corpus at construction time.
type Option func(*Corpus)

// WithStemmer overrides the default suffix-table stemmer.
func WithStemmer(s stemmer.Stemmer) Option {
	return func(c *Corpus) {
		if s != nil {
			c.stem = s
		}
	}
}

// New builds a Corpus from raw text. The text is tokenized and stemmed
// as a whole (for corpus-wide TF queries) and re-tokenized per sentence
// (the unit of document-frequency counting). The IDF table is
// precomputed over the per-sentence vocabulary before New returns.
func New(text string, opts ...Option) *Corpus {
	c := &Corpus{
		stem: stemmer.Suffix{},
		idf:  make(map[string]float64),
	}
	for _, opt := range opts {
		opt(c)
	}

	words := tokenizer.Words(text)
	c.flat = make([]string, 0, len(words))
	for _, w := range words {
		c.flat = append(c.flat, c.stem.Stem(w))
	}

	c.sentences = tokenizer.Sentences(text)
	c.docs = make([][]string, len(c.sentences))
	for i, sentence := range c.sentences {
		raw := tokenizer.Words(sentence)
		doc := make([]string, 0, len(raw))
		for _, w := range raw {
			doc = append(doc, c.stem.Stem(w))
		}
		c.docs[i] = doc
	}

	c.precomputeIDF()
	return c
}

// precomputeIDF fills the IDF table for every distinct stem that occurs
// in at least one sentence document.
func (c *Corpus) precomputeIDF() {
	df := make(map[string]int)
	for _, doc := range c.docs {
		seen := make(map[string]struct{}, len(doc))
		for _, t := range doc {
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			df[t]++
		}
	}
	for t, f := range df {
		c.idf[t] = idfScore(len(c.docs), f)
	}
}

// idfScore is ln((N+1)/(df+1)) + 1. The +1 smoothing keeps the score
// strictly positive even for terms present in every document, and
// defined for terms present in none.
func idfScore(n, df int) float64 {
	return math.Log(float64(n+1)/float64(df+1)) + 1
}

// IDF returns the inverse document frequency of token, stemming it
// first. See IDFForStem.
func (c *Corpus) IDF(token string) float64 {
	return c.IDFForStem(c.stem.Stem(token))
}

// IDFForStem returns the IDF of an already-stemmed token. Cached values
// are returned as-is; unknown stems are scored against the current
// sentence set with the same formula, cached, and returned. The lock
// gives compute-once-per-key semantics under concurrent queries.
func (c *Corpus) IDFForStem(stem string) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.idf[stem]; ok {
		return v
	}
	df := 0
	for _, doc := range c.docs {
		for _, t := range doc {
			if t == stem {
				df++
				break
			}
		}
	}
	v := idfScore(len(c.docs), df)
	c.idf[stem] = v
	return v
}

// TF returns the relative frequency of token's stem within the stemmed
// token stream of the entire source text. An empty corpus yields 0.
func (c *Corpus) TF(token string) float64 {
	return c.tfForStem(c.stem.Stem(token))
}

func (c *Corpus) tfForStem(stem string) float64 {
	if len(c.flat) == 0 {
		return 0
	}
	count := 0
	for _, t := range c.flat {
		if t == stem {
			count++
		}
	}
	return float64(count) / float64(len(c.flat))
}

// TokenStats returns the stemmed form of token together with its
// corpus-wide TF and IDF. Both figures are keyed by the stem; the raw
// lower-cased form is never used for lookups.
func (c *Corpus) TokenStats(token string) TokenStats {
	s := c.stem.Stem(token)
	return TokenStats{
		Token: s,
		TF:    c.tfForStem(s),
		IDF:   c.IDFForStem(s),
	}
}

// StemTokens tokenizes and stems an arbitrary span with this corpus's
// stemmer. Multiplicity and order are preserved.
func (c *Corpus) StemTokens(span string) []string {
	words := tokenizer.Words(span)
	if len(words) == 0 {
		return nil
	}
	out := make([]string, 0, len(words))
	for _, w := range words {
		out = append(out, c.stem.Stem(w))
	}
	return out
}

// Sentences returns the sentence spans in source order. The returned
// slice is shared; callers must not modify it.
func (c *Corpus) Sentences() []string {
	return c.sentences
}

// Len returns the number of sentence documents in the corpus.
func (c *Corpus) Len() int {
	return len(c.docs)
}
