package querylog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/relevanced/relevanced/pkg/metrics"
)

// Sink receives flushed event batches.
type Sink interface {
	InsertBatch(ctx context.Context, events []Event) error
}

const (
	defaultBufferSize    = 1024
	defaultBatchSize     = 100
	defaultFlushInterval = 5 * time.Second
)

// Collector buffers query events and flushes them to a Sink either when a
// batch fills or on a timer. Track never blocks; events are dropped when
// the buffer is full.
type Collector struct {
	sink          Sink
	events        chan Event
	batchSize     int
	flushInterval time.Duration
	metrics       *metrics.Metrics
	logger        *slog.Logger
	wg            sync.WaitGroup
	cancel        context.CancelFunc
}

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// WithBatchSize sets the number of events per flush.
func WithBatchSize(n int) CollectorOption {
	return func(c *Collector) {
		if n > 0 {
			c.batchSize = n
		}
	}
}

// WithFlushInterval sets the maximum time a buffered event waits before
// being flushed.
func WithFlushInterval(d time.Duration) CollectorOption {
	return func(c *Collector) {
		if d > 0 {
			c.flushInterval = d
		}
	}
}

// NewCollector creates a Collector writing to sink. Call Start before Track
// and Stop during shutdown.
func NewCollector(sink Sink, m *metrics.Metrics, opts ...CollectorOption) *Collector {
	c := &Collector{
		sink:          sink,
		events:        make(chan Event, defaultBufferSize),
		batchSize:     defaultBatchSize,
		flushInterval: defaultFlushInterval,
		metrics:       m,
		logger:        slog.Default().With("component", "querylog"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start launches the background flush loop.
func (c *Collector) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.wg.Add(1)
	go c.run(ctx)
}

// Track enqueues an event. When the buffer is full the event is dropped
// and a warning is logged; query logging must not apply backpressure to
// the request path.
func (c *Collector) Track(evt Event) {
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}
	select {
	case c.events <- evt:
	default:
		c.logger.Warn("query log buffer full, dropping event", "corpus_id", evt.CorpusID)
	}
}

// Stop flushes remaining events and waits for the loop to exit.
func (c *Collector) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()
}

func (c *Collector) run(ctx context.Context) {
	defer c.wg.Done()
	ticker := time.NewTicker(c.flushInterval)
	defer ticker.Stop()

	batch := make([]Event, 0, c.batchSize)
	for {
		select {
		case evt := <-c.events:
			batch = append(batch, evt)
			if len(batch) >= c.batchSize {
				c.flush(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				c.flush(batch)
				batch = batch[:0]
			}
		case <-ctx.Done():
			// Drain whatever arrived before cancellation.
			for {
				select {
				case evt := <-c.events:
					batch = append(batch, evt)
				default:
					if len(batch) > 0 {
						c.flush(batch)
					}
					return
				}
			}
		}
	}
}

func (c *Collector) flush(batch []Event) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := c.sink.InsertBatch(ctx, batch); err != nil {
		c.logger.Error("failed to flush query log batch", "size", len(batch), "error", err)
		return
	}
	if c.metrics != nil {
		c.metrics.QueriesLoggedTotal.Add(float64(len(batch)))
	}
	c.logger.Debug("query log batch flushed", "size", len(batch))
}
