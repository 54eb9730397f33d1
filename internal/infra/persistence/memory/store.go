// Package memory provides an in-memory implementation of the rate set store
// used for tests, ephemeral environments and as the hydrated cache behind the
// SQL drivers.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"reactcore/pkg/rateset"
)

// Compile-time contract assertion.
var _ rateset.Store = (*Store)(nil)

// Snapshot is the full state of a Store keyed by rate set name.
type Snapshot map[string]rateset.Document

// Store keeps rate set documents in process memory.
type Store struct {
	mu   sync.RWMutex
	docs map[string]rateset.Document
	now  func() time.Time
}

// NewStore constructs an empty in-memory store.
func NewStore() *Store {
	return &Store{
		docs: make(map[string]rateset.Document),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// NowFunc exposes the timestamp source so persisted stores stamp documents identically.
func (s *Store) NowFunc() func() time.Time {
	return s.now
}

// SetNowFunc overrides the timestamp source, used by tests.
func (s *Store) SetNowFunc(fn func() time.Time) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.now = fn
	s.mu.Unlock()
}

// Prepare validates doc and fills UpdatedAt when unset. It returns the
// normalized copy that Put stores.
func (s *Store) Prepare(doc rateset.Document) (rateset.Document, error) {
	if err := doc.Validate(); err != nil {
		return rateset.Document{}, err
	}
	out := doc.Clone()
	if out.UpdatedAt.IsZero() {
		s.mu.RLock()
		out.UpdatedAt = s.now()
		s.mu.RUnlock()
	}
	return out, nil
}

// Put inserts or replaces a document.
func (s *Store) Put(_ context.Context, doc rateset.Document) error {
	prepared, err := s.Prepare(doc)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.docs[prepared.Name] = prepared
	s.mu.Unlock()
	return nil
}

// Get returns a copy of the named document.
func (s *Store) Get(_ context.Context, name string) (rateset.Document, error) {
	s.mu.RLock()
	doc, ok := s.docs[name]
	s.mu.RUnlock()
	if !ok {
		return rateset.Document{}, rateset.NotFound(name)
	}
	return doc.Clone(), nil
}

// Delete removes the named document.
func (s *Store) Delete(_ context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[name]; !ok {
		return false, nil
	}
	delete(s.docs, name)
	return true, nil
}

// List returns summaries ordered by name.
func (s *Store) List(_ context.Context) ([]rateset.Summary, error) {
	s.mu.RLock()
	out := make([]rateset.Summary, 0, len(s.docs))
	for _, doc := range s.docs {
		out = append(out, doc.Summary())
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Close is a no-op for the memory store.
func (s *Store) Close() error { return nil }

// ExportState returns a deep copy of every stored document.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(Snapshot, len(s.docs))
	for name, doc := range s.docs {
		out[name] = doc.Clone()
	}
	return out
}

// ImportState replaces the store contents with snapshot.
func (s *Store) ImportState(snapshot Snapshot) {
	docs := make(map[string]rateset.Document, len(snapshot))
	for name, doc := range snapshot {
		docs[name] = doc.Clone()
	}
	s.mu.Lock()
	s.docs = docs
	s.mu.Unlock()
}
