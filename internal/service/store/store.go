// Package store keeps the corpora hosted by the service in memory. A
// corpus lives from creation until it is deleted or the process exits;
// nothing is persisted across runs.
package store

import (
	"sort"
	"sync"
	"time"

	"github.com/relevanced/relevanced/internal/relevance/corpus"
	apperrors "github.com/relevanced/relevanced/pkg/errors"
)

// Info describes one hosted corpus.
type Info struct {
	ID        string    `json:"id"`
	Sentences int       `json:"sentences"`
	CreatedAt time.Time `json:"created_at"`
}

type entry struct {
	corpus    *corpus.Corpus
	createdAt time.Time
}

// Store is a concurrency-safe registry of corpora keyed by ID.
type Store struct {
	mu      sync.RWMutex
	corpora map[string]entry
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		corpora: make(map[string]entry),
	}
}

// Create registers c under id. Registering an existing id fails with
// ErrCorpusExists; corpora are immutable, so replacement is delete+create.
func (s *Store) Create(id string, c *corpus.Corpus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.corpora[id]; dup {
		return apperrors.ErrCorpusExists
	}
	s.corpora[id] = entry{corpus: c, createdAt: time.Now().UTC()}
	return nil
}

// Get returns the corpus registered under id.
func (s *Store) Get(id string) (*corpus.Corpus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.corpora[id]
	if !ok {
		return nil, apperrors.ErrCorpusNotFound
	}
	return e.corpus, nil
}

// Delete removes the corpus registered under id.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.corpora[id]; !ok {
		return apperrors.ErrCorpusNotFound
	}
	delete(s.corpora, id)
	return nil
}

// List returns Info for every hosted corpus, ordered by ID.
func (s *Store) List() []Info {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Info, 0, len(s.corpora))
	for id, e := range s.corpora {
		out = append(out, Info{
			ID:        id,
			Sentences: e.corpus.Len(),
			CreatedAt: e.createdAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Count returns the number of hosted corpora.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.corpora)
}
