// Package similarity scores the lexical closeness of two text spans as
// the cosine of their TF-IDF vectors. TF is local to each span; IDF is
// global to the corpus the spans are compared under.
package similarity

import (
	"math"

	"github.com/relevanced/relevanced/internal/relevance/corpus"
)

// Score returns the cosine similarity of spanA and spanB in [0,1].
//
// Either span stemming to an empty token sequence means there is no
// comparable content, which scores 0. Zero-magnitude vectors are also
// scored 0 rather than dividing by zero; with the smoothed IDF formula
// that only happens for empty vocabularies.
func Score(c *corpus.Corpus, spanA, spanB string) float64 {
	ta := c.StemTokens(spanA)
	tb := c.StemTokens(spanB)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	vocab := union(ta, tb)
	va := vectorize(c, ta, vocab)
	vb := vectorize(c, tb, vocab)

	var dot, magA, magB float64
	for i := range vocab {
		dot += va[i] * vb[i]
		magA += va[i] * va[i]
		magB += vb[i] * vb[i]
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

// union deduplicates a then b, preserving first-encounter order. Both
// vectors must be built over the identical term order, so the union is
// computed once and shared.
func union(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [2][]string{a, b} {
		for _, t := range list {
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}

// vectorize builds the TF-IDF vector of tokens over vocab. TF is the
// token's count divided by the span length; IDF comes from the corpus.
func vectorize(c *corpus.Corpus, tokens []string, vocab []string) []float64 {
	counts := make(map[string]int, len(tokens))
	for _, t := range tokens {
		counts[t]++
	}
	n := float64(len(tokens))
	vec := make([]float64, len(vocab))
	for i, term := range vocab {
		tf := float64(counts[term]) / n
		vec[i] = tf * c.IDFForStem(term)
	}
	return vec
}
