package querylog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/relevanced/relevanced/pkg/postgres"
)

const schema = `
CREATE TABLE IF NOT EXISTS query_log (
    id          BIGSERIAL PRIMARY KEY,
    corpus_id   TEXT             NOT NULL,
    query       TEXT             NOT NULL,
    matched     INTEGER          NOT NULL,
    returned    INTEGER          NOT NULL,
    top_score   DOUBLE PRECISION NOT NULL,
    latency_ms  DOUBLE PRECISION NOT NULL,
    cache_hit   BOOLEAN          NOT NULL,
    request_id  TEXT             NOT NULL DEFAULT '',
    created_at  TIMESTAMPTZ      NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_query_log_corpus_created
    ON query_log (corpus_id, created_at DESC);
`

// PostgresStore persists query-log events. It implements Sink.
type PostgresStore struct {
	client *postgres.Client
}

// NewPostgresStore wraps an established PostgreSQL client.
func NewPostgresStore(client *postgres.Client) *PostgresStore {
	return &PostgresStore{client: client}
}

// EnsureSchema creates the query_log table and index if missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.client.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating query_log schema: %w", err)
	}
	return nil
}

// InsertBatch writes a batch of events in one transaction.
func (s *PostgresStore) InsertBatch(ctx context.Context, events []Event) error {
	if len(events) == 0 {
		return nil
	}
	return s.client.InTx(ctx, func(tx *sql.Tx) error {
		var (
			sb   strings.Builder
			args []any
		)
		sb.WriteString(`INSERT INTO query_log
            (corpus_id, query, matched, returned, top_score, latency_ms, cache_hit, request_id, created_at)
            VALUES `)
		for i, evt := range events {
			if i > 0 {
				sb.WriteString(", ")
			}
			base := i * 9
			fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9)
			args = append(args,
				evt.CorpusID, evt.Query, evt.Matched, evt.Returned,
				evt.TopScore, evt.LatencyMs, evt.CacheHit, evt.RequestID, evt.Timestamp,
			)
		}
		if _, err := tx.ExecContext(ctx, sb.String(), args...); err != nil {
			return fmt.Errorf("inserting %d query log events: %w", len(events), err)
		}
		return nil
	})
}

// Recent returns the most recent events for a corpus, newest first. An
// empty corpusID returns events across all corpora.
func (s *PostgresStore) Recent(ctx context.Context, corpusID string, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT corpus_id, query, matched, returned, top_score, latency_ms, cache_hit, request_id, created_at
        FROM query_log`
	args := []any{}
	if corpusID != "" {
		query += ` WHERE corpus_id = $1 ORDER BY created_at DESC LIMIT $2`
		args = append(args, corpusID, limit)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.client.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying recent events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var evt Event
		if err := rows.Scan(
			&evt.CorpusID, &evt.Query, &evt.Matched, &evt.Returned,
			&evt.TopScore, &evt.LatencyMs, &evt.CacheHit, &evt.RequestID, &evt.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("scanning query log row: %w", err)
		}
		events = append(events, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating query log rows: %w", err)
	}
	return events, nil
}
