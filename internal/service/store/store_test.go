package store

import (
	"errors"
	"testing"

	"github.com/relevanced/relevanced/internal/relevance/corpus"
	apperrors "github.com/relevanced/relevanced/pkg/errors"
)

func TestCreateGetDelete(t *testing.T) {
	s := New()
	c := corpus.New("The cat sat. The dog ran fast.")

	if err := s.Create("doc-1", c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	got, err := s.Get("doc-1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got != c {
		t.Error("Get returned a different corpus")
	}
	if s.Count() != 1 {
		t.Errorf("Count = %d, want 1", s.Count())
	}

	if err := s.Delete("doc-1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := s.Get("doc-1"); !errors.Is(err, apperrors.ErrCorpusNotFound) {
		t.Errorf("Get after delete returned %v, want ErrCorpusNotFound", err)
	}
}

func TestCreateDuplicate(t *testing.T) {
	s := New()
	if err := s.Create("doc-1", corpus.New("one. two.")); err != nil {
		t.Fatalf("first Create returned error: %v", err)
	}
	err := s.Create("doc-1", corpus.New("three. four."))
	if !errors.Is(err, apperrors.ErrCorpusExists) {
		t.Errorf("duplicate Create returned %v, want ErrCorpusExists", err)
	}
}

func TestGetUnknown(t *testing.T) {
	s := New()
	if _, err := s.Get("nope"); !errors.Is(err, apperrors.ErrCorpusNotFound) {
		t.Errorf("Get(nope) returned %v, want ErrCorpusNotFound", err)
	}
	if err := s.Delete("nope"); !errors.Is(err, apperrors.ErrCorpusNotFound) {
		t.Errorf("Delete(nope) returned %v, want ErrCorpusNotFound", err)
	}
}

func TestListOrderedByID(t *testing.T) {
	s := New()
	for _, id := range []string{"charlie", "alpha", "bravo"} {
		if err := s.Create(id, corpus.New("a sentence.")); err != nil {
			t.Fatal(err)
		}
	}
	infos := s.List()
	if len(infos) != 3 {
		t.Fatalf("List returned %d entries, want 3", len(infos))
	}
	want := []string{"alpha", "bravo", "charlie"}
	for i, info := range infos {
		if info.ID != want[i] {
			t.Errorf("List[%d].ID = %q, want %q", i, info.ID, want[i])
		}
		if info.Sentences != 1 {
			t.Errorf("List[%d].Sentences = %d, want 1", i, info.Sentences)
		}
	}
}
