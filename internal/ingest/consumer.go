package ingest

import (
	"context"
	"errors"
	"log/slog"

	"github.com/relevanced/relevanced/internal/relevance/corpus"
	"github.com/relevanced/relevanced/internal/relevance/stemmer"
	"github.com/relevanced/relevanced/internal/service/store"
	apperrors "github.com/relevanced/relevanced/pkg/errors"
	"github.com/relevanced/relevanced/pkg/kafka"
	"github.com/relevanced/relevanced/pkg/metrics"
)

// Consumer builds corpora from events on the ingestion topic and registers
// them in the store.
type Consumer struct {
	store     *store.Store
	validator *Validator
	stem      stemmer.Stemmer
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// NewConsumer creates a Consumer. stemmerName selects the stemming
// implementation applied to consumed corpora.
func NewConsumer(s *store.Store, v *Validator, stemmerName string, m *metrics.Metrics) *Consumer {
	return &Consumer{
		store:     s,
		validator: v,
		stem:      stemmer.New(stemmerName),
		metrics:   m,
		logger:    slog.Default().With("component", "ingest-consumer"),
	}
}

// Handle is the kafka.MessageHandler for corpus events. Malformed and
// invalid events are logged and dropped rather than retried; they would
// fail identically on every redelivery.
func (c *Consumer) Handle(ctx context.Context, key, value []byte) error {
	evt, err := kafka.DecodeJSON[CorpusEvent](value)
	if err != nil {
		c.logger.Error("dropping undecodable corpus event", "key", string(key), "error", err)
		return nil
	}
	if err := c.validator.ValidateEvent(evt); err != nil {
		c.logger.Error("dropping invalid corpus event", "corpus_id", evt.CorpusID, "error", err)
		return nil
	}

	built := corpus.New(evt.Text, corpus.WithStemmer(c.stem))
	if err := c.store.Create(evt.CorpusID, built); err != nil {
		if errors.Is(err, apperrors.ErrCorpusExists) {
			c.logger.Warn("corpus already exists, skipping event", "corpus_id", evt.CorpusID)
			return nil
		}
		return err
	}
	if c.metrics != nil {
		c.metrics.CorporaCreatedTotal.WithLabelValues("kafka").Inc()
		c.metrics.CorporaActive.Set(float64(c.store.Count()))
	}
	c.logger.Info("corpus ingested",
		"corpus_id", evt.CorpusID,
		"sentences", built.Len(),
		"ingested_at", evt.IngestedAt,
	)
	return nil
}
