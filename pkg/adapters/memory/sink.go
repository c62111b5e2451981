package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/transposer/pkg/ports"
)

// Sink implements ports.Sink in memory.
// Safe for concurrent use.
type Sink struct {
	data map[string]map[string]ports.Result
	mu   sync.RWMutex
}

// NewSink creates a new in-memory sink.
func NewSink() *Sink {
	return &Sink{
		data: make(map[string]map[string]ports.Result),
	}
}

// Write stores the result.
func (s *Sink) Write(ctx context.Context, res ports.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byDest, ok := s.data[res.Piece]
	if !ok {
		byDest = make(map[string]ports.Result)
		s.data[res.Piece] = byDest
	}
	byDest[res.Destination.Name] = res
	return nil
}

// Read retrieves a result by piece and destination name.
func (s *Sink) Read(ctx context.Context, piece, destination string) (*ports.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, ok := s.data[piece][destination]
	if !ok {
		return nil, ports.ErrResultNotFound
	}
	return &res, nil
}

// List returns the destination names stored for a piece.
func (s *Sink) List(ctx context.Context, piece string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data[piece]))
	for name := range s.data[piece] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Results returns every stored result for a piece, ordered by destination name.
func (s *Sink) Results(piece string) []ports.Result {
	names, _ := s.List(context.Background(), piece)

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ports.Result, 0, len(names))
	for _, n := range names {
		out = append(out, s.data[piece][n])
	}
	return out
}
