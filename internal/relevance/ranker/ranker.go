// Package ranker orders a corpus's sentences by lexical relevance to a
// free-text query.
package ranker

import (
	"sort"
	"strings"

	"github.com/relevanced/relevanced/internal/relevance/corpus"
	"github.com/relevanced/relevanced/internal/relevance/similarity"
)

// Result is one scored sentence.
type Result struct {
	Sentence string  `json:"sentence"`
	Score    float64 `json:"score"`
}

// Rank scores every sentence in c against query and returns the
// strictly-positive matches sorted by score descending. Sentences that
// tie keep their original document order (stable sort). When topN > 0
// the list is truncated after sorting; topN <= 0 returns everything.
//
// An empty or whitespace-only query returns nil: no meaningful input is
// an ordinary outcome here, not an error.
func Rank(c *corpus.Corpus, query string, topN int) []Result {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	var results []Result
	for _, sentence := range c.Sentences() {
		score := similarity.Score(c, query, sentence)
		if score > 0 {
			results = append(results, Result{Sentence: sentence, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if topN > 0 && len(results) > topN {
		results = results[:topN]
	}
	return results
}
