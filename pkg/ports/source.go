package ports

import (
	"context"
	"errors"

	"github.com/aretw0/transposer/pkg/domain"
)

// ErrPieceNotFound is returned when a Source has no document for a piece.
var ErrPieceNotFound = errors.New("piece not found")

// Source loads analysis documents.
type Source interface {
	// Load returns the parsed analysis for a piece.
	// Returns ErrPieceNotFound if the piece does not exist.
	Load(ctx context.Context, piece string) (*domain.Analysis, error)
}

// DestinationEnumerator lists the keys a piece should be transposed into.
type DestinationEnumerator interface {
	// Destinations returns every destination of the given mode, in a stable order.
	Destinations(ctx context.Context, mode domain.Mode) ([]domain.Destination, error)
}
