package querylog

import (
	"context"
	"sync"
	"testing"
	"time"
)

type captureSink struct {
	mu      sync.Mutex
	batches [][]Event
}

func (s *captureSink) InsertBatch(_ context.Context, events []Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	batch := make([]Event, len(events))
	copy(batch, events)
	s.batches = append(s.batches, batch)
	return nil
}

func (s *captureSink) total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, b := range s.batches {
		n += len(b)
	}
	return n
}

func TestCollectorFlushesFullBatch(t *testing.T) {
	sink := &captureSink{}
	c := NewCollector(sink, nil, WithBatchSize(3), WithFlushInterval(time.Hour))
	c.Start()

	for i := 0; i < 3; i++ {
		c.Track(Event{CorpusID: "doc-1", Query: "cat"})
	}

	deadline := time.After(2 * time.Second)
	for sink.total() < 3 {
		select {
		case <-deadline:
			t.Fatalf("expected 3 flushed events, got %d", sink.total())
		case <-time.After(10 * time.Millisecond):
		}
	}
	c.Stop()
}

func TestCollectorFlushesOnInterval(t *testing.T) {
	sink := &captureSink{}
	c := NewCollector(sink, nil, WithBatchSize(100), WithFlushInterval(20*time.Millisecond))
	c.Start()

	c.Track(Event{CorpusID: "doc-1", Query: "cat"})

	deadline := time.After(2 * time.Second)
	for sink.total() < 1 {
		select {
		case <-deadline:
			t.Fatal("event was not flushed on interval")
		case <-time.After(10 * time.Millisecond):
		}
	}
	c.Stop()
}

func TestCollectorStopDrains(t *testing.T) {
	sink := &captureSink{}
	c := NewCollector(sink, nil, WithBatchSize(100), WithFlushInterval(time.Hour))
	c.Start()

	for i := 0; i < 5; i++ {
		c.Track(Event{CorpusID: "doc-1", Query: "cat"})
	}
	c.Stop()

	if got := sink.total(); got != 5 {
		t.Errorf("Stop flushed %d events, want 5", got)
	}
}

func TestTrackSetsTimestamp(t *testing.T) {
	sink := &captureSink{}
	c := NewCollector(sink, nil, WithBatchSize(1), WithFlushInterval(time.Hour))
	c.Start()
	c.Track(Event{CorpusID: "doc-1", Query: "cat"})
	c.Stop()

	if sink.total() != 1 {
		t.Fatalf("expected 1 event, got %d", sink.total())
	}
	if sink.batches[0][0].Timestamp.IsZero() {
		t.Error("Track did not default the timestamp")
	}
}

func TestTrackNeverBlocks(t *testing.T) {
	sink := &captureSink{}
	c := NewCollector(sink, nil)
	// Not started: nothing drains the channel.
	done := make(chan struct{})
	go func() {
		for i := 0; i < defaultBufferSize+10; i++ {
			c.Track(Event{CorpusID: "doc-1"})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Track blocked on a full buffer")
	}
}
