package ports

import (
	"context"
	"errors"

	"github.com/aretw0/transposer/pkg/domain"
)

// ErrResultNotFound is returned when a Sink holds no result for a piece and destination.
var ErrResultNotFound = errors.New("result not found")

// Result is the transposed text of one piece in one destination key.
type Result struct {
	Piece       string             `json:"piece"`
	Destination domain.Destination `json:"destination"`
	Text        string             `json:"text"`
}

// Sink persists transposition results.
type Sink interface {
	// Write stores the result, replacing any previous result for the same piece and destination.
	Write(ctx context.Context, result Result) error

	// Read retrieves the result for a piece and destination name.
	// Returns ErrResultNotFound if nothing was written.
	Read(ctx context.Context, piece, destination string) (*Result, error)

	// List returns the destination names written for a piece, sorted.
	List(ctx context.Context, piece string) ([]string, error)
}
