// Package tokenizer splits raw text into word tokens and into
// sentence-level spans. Both entry points are fail-safe: empty or
// whitespace-only input yields an empty result, never an error.
package tokenizer

import (
	"strings"
	"unicode"
)

// Words splits text into raw word tokens. A token is a maximal run of
// Unicode letters and digits; everything else is a separator.
func Words(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// sentenceBoundary reports whether r terminates or separates sentence
// spans. Curly-quote variants are included because they show up in
// copy-pasted prose.
func sentenceBoundary(r rune) bool {
	switch r {
	case '.', '!', '?', ',', '"', '“', '”', ':', ';', '\n':
		return true
	}
	return false
}

// Sentences splits text on runs of sentence-terminating punctuation,
// trims each span, and drops empty spans. Order follows the source text.
func Sentences(text string) []string {
	parts := strings.FieldsFunc(text, sentenceBoundary)
	spans := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			spans = append(spans, p)
		}
	}
	return spans
}
