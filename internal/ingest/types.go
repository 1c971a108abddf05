// Package ingest handles corpus admission: request validation, asynchronous
// publication to Kafka, and the consumer that builds corpora from the topic.
package ingest

import "time"

// CorpusRequest is the HTTP payload for creating a corpus.
type CorpusRequest struct {
	CorpusID string `json:"corpus_id"`
	Text     string `json:"text"`
	Async    bool   `json:"async,omitempty"`
}

// CorpusEvent is the Kafka message for asynchronous corpus ingestion. The
// corpus ID doubles as the partition key so replays for one corpus stay
// ordered.
type CorpusEvent struct {
	CorpusID   string    `json:"corpus_id"`
	Text       string    `json:"text"`
	IngestedAt time.Time `json:"ingested_at"`
}
