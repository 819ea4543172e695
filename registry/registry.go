// Package registry provides the reference in-memory connection sink:
// a thread-safe store for committed edges with count/attribute queries
// and CSV export. The engine itself holds no edge state; callers that
// need persistence beyond a generation pass keep a Store (or their own
// connect.Sink implementation).
package registry

import (
	"io"
	"sync"

	"github.com/gocarina/gocsv"

	"github.com/velkyn/neuromesh/connect"
)

// Store is an append-only edge registry. The zero value is not ready;
// use New.
type Store struct {
	mu    sync.RWMutex
	edges []connect.Edge
}

// New returns an empty registry.
func New() *Store {
	return &Store{edges: make([]connect.Edge, 0, 64)}
}

// Insert implements connect.Sink.
func (s *Store) Insert(e connect.Edge) error {
	s.mu.Lock()
	s.edges = append(s.edges, e)
	s.mu.Unlock()
	return nil
}

// Count returns the number of committed edges.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.edges)
}

// Edges returns a snapshot copy of all committed edges in insertion
// order. Mutating the result does not affect the store.
func (s *Store) Edges() []connect.Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]connect.Edge, len(s.edges))
	copy(out, s.edges)
	return out
}

// Weights returns the weight of every committed edge in insertion order.
func (s *Store) Weights() []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]float64, len(s.edges))
	for i, e := range s.edges {
		out[i] = e.Weight
	}
	return out
}

// Delays returns the delay of every committed edge in insertion order.
func (s *Store) Delays() []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]float64, len(s.edges))
	for i, e := range s.edges {
		out[i] = e.Delay
	}
	return out
}

// Reset discards all committed edges.
func (s *Store) Reset() {
	s.mu.Lock()
	s.edges = s.edges[:0]
	s.mu.Unlock()
}

// DumpCSV writes all committed edges as CSV (source, target, model,
// weight, delay) to w.
func (s *Store) DumpCSV(w io.Writer) error {
	edges := s.Edges()
	return gocsv.Marshal(&edges, w)
}
