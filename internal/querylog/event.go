// Package querylog records rank queries for offline analysis. Events are
// buffered in memory and flushed to PostgreSQL in batches; logging never
// blocks or fails a rank request.
package querylog

import "time"

// Event captures one rank query and its outcome.
type Event struct {
	CorpusID  string    `json:"corpus_id"`
	Query     string    `json:"query"`
	Matched   int       `json:"matched"`
	Returned  int       `json:"returned"`
	TopScore  float64   `json:"top_score"`
	LatencyMs float64   `json:"latency_ms"`
	CacheHit  bool      `json:"cache_hit"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}
