package similarity

import (
	"math"
	"testing"

	"github.com/relevanced/relevanced/internal/relevance/corpus"
)

const sampleText = "The cat sat. The dog ran fast."

func TestScoreSelfSimilarity(t *testing.T) {
	c := corpus.New(sampleText)
	for _, span := range []string{"The cat sat", "dog ran", "cats running fast"} {
		got := Score(c, span, span)
		if math.Abs(got-1) > 1e-12 {
			t.Errorf("Score(%q, %q) = %v, want 1", span, span, got)
		}
	}
}

func TestScoreEmptySpans(t *testing.T) {
	c := corpus.New(sampleText)
	tests := []struct {
		name string
		a, b string
	}{
		{"both empty", "", ""},
		{"first empty", "", "The cat sat"},
		{"second empty", "The cat sat", ""},
		{"punctuation only", "?!;", "The cat sat"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Score(c, tc.a, tc.b); got != 0 {
				t.Errorf("Score(%q, %q) = %v, want 0", tc.a, tc.b, got)
			}
		})
	}
}

func TestScoreDisjointSpans(t *testing.T) {
	c := corpus.New(sampleText)
	if got := Score(c, "cat", "The dog ran fast"); got != 0 {
		t.Errorf("Score over disjoint vocabularies = %v, want 0", got)
	}
}

func TestScoreRangeAndSymmetry(t *testing.T) {
	c := corpus.New(sampleText)
	pairs := [][2]string{
		{"cat", "The cat sat"},
		{"the cat", "the dog"},
		{"fast dog", "The dog ran fast"},
	}
	for _, p := range pairs {
		ab := Score(c, p[0], p[1])
		ba := Score(c, p[1], p[0])
		if ab < 0 || ab > 1+1e-12 {
			t.Errorf("Score(%q, %q) = %v, outside [0,1]", p[0], p[1], ab)
		}
		if math.Abs(ab-ba) > 1e-12 {
			t.Errorf("Score not symmetric: %v vs %v for %q / %q", ab, ba, p[0], p[1])
		}
	}
}

func TestScorePartialOverlapBeatsNone(t *testing.T) {
	c := corpus.New(sampleText)
	matching := Score(c, "cat", "The cat sat")
	if matching <= 0 {
		t.Fatalf("Score(cat, The cat sat) = %v, want > 0", matching)
	}
	if matching >= 1 {
		t.Fatalf("Score(cat, The cat sat) = %v, want < 1 for partial overlap", matching)
	}
}

func TestScoreUsesStemmedForms(t *testing.T) {
	c := corpus.New(sampleText)
	// "cats" stems to "cat", so it must match the first sentence.
	if got := Score(c, "cats", "The cat sat"); got <= 0 {
		t.Errorf("Score(cats, The cat sat) = %v, want > 0", got)
	}
}

func TestUnionPreservesFirstEncounterOrder(t *testing.T) {
	got := union([]string{"b", "a", "b"}, []string{"c", "a", "d"})
	want := []string{"b", "a", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("union = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("union = %v, want %v", got, want)
		}
	}
}
