package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aretw0/transposer/pkg/domain"
	"github.com/aretw0/transposer/pkg/ports"
)

// Source implements ports.Source over documents held in memory.
type Source struct {
	docs map[string]string
	mu   sync.RWMutex
}

// NewSource creates a source from piece → document text.
func NewSource(docs map[string]string) *Source {
	s := &Source{docs: make(map[string]string, len(docs))}
	for k, v := range docs {
		s.docs[k] = v
	}
	return s
}

// Add registers or replaces a document.
func (s *Source) Add(piece, doc string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[piece] = doc
}

// Load parses the stored document.
func (s *Source) Load(ctx context.Context, piece string) (*domain.Analysis, error) {
	s.mu.RLock()
	doc, ok := s.docs[piece]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ports.ErrPieceNotFound, piece)
	}
	return domain.ParseAnalysis(piece, strings.NewReader(doc))
}

// Enumerator implements ports.DestinationEnumerator with a fixed list.
type Enumerator struct {
	dests []domain.Destination
}

// NewEnumerator returns an enumerator over the given destinations.
// With no destinations it serves domain.AllDestinations.
func NewEnumerator(dests ...domain.Destination) *Enumerator {
	return &Enumerator{dests: dests}
}

// Destinations returns the configured destinations matching mode.
func (e *Enumerator) Destinations(ctx context.Context, mode domain.Mode) ([]domain.Destination, error) {
	if len(e.dests) == 0 {
		return domain.AllDestinations(mode), nil
	}
	out := make([]domain.Destination, 0, len(e.dests))
	for _, d := range e.dests {
		if d.Key.Mode.IsMajor() == mode.IsMajor() {
			out = append(out, d)
		}
	}
	return out, nil
}
