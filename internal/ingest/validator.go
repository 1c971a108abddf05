package ingest

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	apperrors "github.com/relevanced/relevanced/pkg/errors"
)

var corpusIDPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]{0,127}$`)

// Validator checks corpus requests before they reach the store or the topic.
type Validator struct {
	maxDocumentSize int
}

// NewValidator creates a Validator. maxDocumentSize bounds the corpus text
// in bytes; zero or negative disables the bound.
func NewValidator(maxDocumentSize int) *Validator {
	return &Validator{maxDocumentSize: maxDocumentSize}
}

// Validate checks a corpus request and returns an AppError describing the
// first problem found.
func (v *Validator) Validate(req CorpusRequest) error {
	if req.CorpusID == "" {
		return apperrors.New(apperrors.ErrInvalidInput, http.StatusBadRequest, "corpus_id is required")
	}
	if !corpusIDPattern.MatchString(req.CorpusID) {
		return apperrors.Newf(apperrors.ErrInvalidInput, http.StatusBadRequest,
			"corpus_id %q must match %s", req.CorpusID, corpusIDPattern.String())
	}
	if strings.TrimSpace(req.Text) == "" {
		return apperrors.New(apperrors.ErrInvalidInput, http.StatusBadRequest, "text is required")
	}
	if v.maxDocumentSize > 0 && len(req.Text) > v.maxDocumentSize {
		return apperrors.Newf(apperrors.ErrInvalidInput, http.StatusRequestEntityTooLarge,
			"text is %d bytes, limit is %d", len(req.Text), v.maxDocumentSize)
	}
	return nil
}

// ValidateEvent checks a consumed Kafka event using the same rules as HTTP
// requests.
func (v *Validator) ValidateEvent(evt CorpusEvent) error {
	if err := v.Validate(CorpusRequest{CorpusID: evt.CorpusID, Text: evt.Text}); err != nil {
		return fmt.Errorf("corpus event %s: %w", evt.CorpusID, err)
	}
	return nil
}
