package ranker

import (
	"testing"

	"github.com/relevanced/relevanced/internal/relevance/corpus"
)

func TestRankOrdersByRelevance(t *testing.T) {
	c := corpus.New("The cat sat. The dog ran fast.")
	results := Rank(c, "cat", 0)
	if len(results) != 1 {
		t.Fatalf("Rank(cat) returned %d results, want 1: %v", len(results), results)
	}
	if results[0].Sentence != "The cat sat" {
		t.Errorf("top result = %q, want %q", results[0].Sentence, "The cat sat")
	}
	if results[0].Score <= 0 {
		t.Errorf("top score = %v, want > 0", results[0].Score)
	}
}

func TestRankEmptyQuery(t *testing.T) {
	c := corpus.New("The cat sat. The dog ran fast.")
	for _, q := range []string{"", "   ", "\t\n"} {
		if got := Rank(c, q, 0); got != nil {
			t.Errorf("Rank(%q) = %v, want nil", q, got)
		}
	}
}

func TestRankEmptyCorpus(t *testing.T) {
	c := corpus.New("")
	if got := Rank(c, "cat", 0); got != nil {
		t.Errorf("Rank over empty corpus = %v, want nil", got)
	}
}

func TestRankScoresDescendingAndPositive(t *testing.T) {
	c := corpus.New("cats and dogs. cats everywhere. dogs sometimes. nothing here at all.")
	results := Rank(c, "cats dogs", 0)
	if len(results) == 0 {
		t.Fatal("Rank returned no results")
	}
	for i, r := range results {
		if r.Score <= 0 {
			t.Errorf("result %d score = %v, want > 0", i, r.Score)
		}
		if i > 0 && results[i-1].Score < r.Score {
			t.Errorf("results out of order at %d: %v before %v", i, results[i-1].Score, r.Score)
		}
	}
}

func TestRankTopNTruncates(t *testing.T) {
	c := corpus.New("cat one. cat two. cat three. cat four.")
	all := Rank(c, "cat", 0)
	if len(all) != 4 {
		t.Fatalf("Rank with topN=0 returned %d results, want 4", len(all))
	}
	top2 := Rank(c, "cat", 2)
	if len(top2) != 2 {
		t.Fatalf("Rank with topN=2 returned %d results", len(top2))
	}
	// negative topN behaves like zero
	if got := Rank(c, "cat", -3); len(got) != 4 {
		t.Fatalf("Rank with topN=-3 returned %d results, want 4", len(got))
	}
}

func TestRankTiesKeepDocumentOrder(t *testing.T) {
	// both sentences score identically for this query
	c := corpus.New("alpha beta. beta alpha.")
	results := Rank(c, "alpha beta", 0)
	if len(results) != 2 {
		t.Fatalf("Rank returned %d results, want 2", len(results))
	}
	if results[0].Score != results[1].Score {
		t.Fatalf("scores differ: %v vs %v", results[0].Score, results[1].Score)
	}
	if results[0].Sentence != "alpha beta" || results[1].Sentence != "beta alpha" {
		t.Errorf("tied results reordered: %v", results)
	}
}

func TestRankQueryOutsideCorpusVocabulary(t *testing.T) {
	c := corpus.New("The cat sat. The dog ran fast.")
	if got := Rank(c, "zebra", 0); len(got) != 0 {
		t.Errorf("Rank(zebra) = %v, want no results", got)
	}
	// the lazy IDF fill for "zebra" must not change later rankings
	results := Rank(c, "cat", 0)
	if len(results) != 1 || results[0].Sentence != "The cat sat" {
		t.Errorf("Rank(cat) after unknown-token query = %v", results)
	}
}
