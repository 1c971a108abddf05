package tokenizer

import (
	"reflect"
	"strings"
	"testing"
	"unicode"
)

func TestWords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "simple sentence",
			text: "The cat sat",
			want: []string{"The", "cat", "sat"},
		},
		{
			name: "punctuation runs collapse",
			text: "well--known, (mostly) fine!",
			want: []string{"well", "known", "mostly", "fine"},
		},
		{
			name: "digits kept",
			text: "route 66 rocks",
			want: []string{"route", "66", "rocks"},
		},
		{
			name: "unicode letters kept",
			text: "naïve café",
			want: []string{"naïve", "café"},
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
		{
			name: "whitespace only",
			text: "   \t\n  ",
			want: nil,
		},
		{
			name: "punctuation only",
			text: "?!... --- ;;;",
			want: nil,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Words(tc.text)
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Words(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestWordsNoEmptyOrPunctuationTokens(t *testing.T) {
	texts := []string{
		"The cat sat. The dog ran fast.",
		"a,b,,c  --  d",
		"“curly” quotes: and; more\nlines",
	}
	for _, text := range texts {
		for _, tok := range Words(text) {
			if tok == "" {
				t.Fatalf("Words(%q) produced an empty token", text)
			}
			if strings.IndexFunc(tok, func(r rune) bool {
				return !unicode.IsLetter(r) && !unicode.IsDigit(r)
			}) >= 0 {
				t.Fatalf("Words(%q) produced token %q with separator characters", text, tok)
			}
		}
	}
}

func TestSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "periods",
			text: "The cat sat. The dog ran fast.",
			want: []string{"The cat sat", "The dog ran fast"},
		},
		{
			name: "mixed terminators",
			text: "Really? Yes! Fine: good; done",
			want: []string{"Really", "Yes", "Fine", "good", "done"},
		},
		{
			name: "curly quotes and newlines",
			text: "“first span”\nsecond span",
			want: []string{"first span", "second span"},
		},
		{
			name: "empty spans dropped",
			text: "one..two,,,three",
			want: []string{"one", "two", "three"},
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Sentences(tc.text)
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Sentences(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}
