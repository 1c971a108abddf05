package benchmark

import (
	"strings"
	"testing"

	"github.com/relevanced/relevanced/internal/relevance/corpus"
	"github.com/relevanced/relevanced/internal/relevance/ranker"
	"github.com/relevanced/relevanced/internal/relevance/stemmer"
	"github.com/relevanced/relevanced/internal/relevance/tokenizer"
)

var sampleSentences = []string{
	"The quick brown fox jumps over the lazy dog.",
	"Cats and dogs chase each other through the garden.",
	"Relevance ranking orders sentences by similarity to a query.",
	"Term frequency counts occurrences within a span of text.",
	"Inverse document frequency rewards rare and distinctive terms.",
	"The engine stems tokens before building its vocabulary.",
	"Queries and sentences share one insertion ordered vocabulary.",
	"Caching repeated queries avoids recomputing cosine scores.",
}

func sampleText(repeats int) string {
	var sb strings.Builder
	for i := 0; i < repeats; i++ {
		for _, s := range sampleSentences {
			sb.WriteString(s)
			sb.WriteString(" ")
		}
	}
	return sb.String()
}

func BenchmarkTokenizeWords(b *testing.B) {
	text := sampleText(16)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tokenizer.Words(text)
	}
}

func BenchmarkStemSuffix(b *testing.B) {
	words := tokenizer.Words(sampleText(4))
	s := stemmer.Suffix{}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, w := range words {
			s.Stem(w)
		}
	}
}

func BenchmarkCorpusNew(b *testing.B) {
	text := sampleText(16)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		corpus.New(text)
	}
}

func BenchmarkRank(b *testing.B) {
	c := corpus.New(sampleText(16))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ranker.Rank(c, "relevance ranking for rare terms", 10)
	}
}

func BenchmarkRankLargeCorpus(b *testing.B) {
	c := corpus.New(sampleText(256))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ranker.Rank(c, "cats chase dogs", 10)
	}
}
