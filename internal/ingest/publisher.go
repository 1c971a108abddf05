package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/relevanced/relevanced/pkg/kafka"
)

// Publisher submits corpus requests to the ingestion topic for asynchronous
// processing.
type Publisher struct {
	producer *kafka.Producer
	logger   *slog.Logger
}

// NewPublisher wraps a Kafka producer bound to the corpus topic.
func NewPublisher(producer *kafka.Producer) *Publisher {
	return &Publisher{
		producer: producer,
		logger:   slog.Default().With("component", "ingest-publisher"),
	}
}

// Publish converts the request into a CorpusEvent and writes it to Kafka.
func (p *Publisher) Publish(ctx context.Context, req CorpusRequest) error {
	evt := CorpusEvent{
		CorpusID:   req.CorpusID,
		Text:       req.Text,
		IngestedAt: time.Now().UTC(),
	}
	if err := p.producer.Publish(ctx, kafka.Event{Key: req.CorpusID, Value: evt}); err != nil {
		return fmt.Errorf("publishing corpus %s: %w", req.CorpusID, err)
	}
	p.logger.Info("corpus queued for ingestion", "corpus_id", req.CorpusID, "text_size", len(req.Text))
	return nil
}

// Close closes the underlying producer.
func (p *Publisher) Close() error {
	return p.producer.Close()
}
