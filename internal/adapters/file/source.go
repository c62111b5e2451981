package file

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/transposer/internal/logging"
	"github.com/aretw0/transposer/pkg/domain"
	"github.com/aretw0/transposer/pkg/ports"
)

// Ext is the extension of analysis documents and of written results.
const Ext = ".txt"

// Source implements ports.Source over a directory of "<piece>.txt" documents.
type Source struct {
	BasePath string
}

var _ ports.Source = (*Source)(nil)

// NewSource creates a Source. If basePath is empty, it defaults to "flattened_outputs".
func NewSource(basePath string) *Source {
	if basePath == "" {
		basePath = "flattened_outputs"
	}
	return &Source{BasePath: basePath}
}

// Load reads and parses the piece's document.
func (s *Source) Load(ctx context.Context, piece string) (*domain.Analysis, error) {
	if piece == "" {
		return nil, fmt.Errorf("piece cannot be empty")
	}

	f, err := os.Open(filepath.Join(s.BasePath, piece+Ext))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ports.ErrPieceNotFound, piece)
		}
		return nil, fmt.Errorf("failed to open piece: %w", err)
	}
	defer f.Close()

	return domain.ParseAnalysis(piece, f)
}

// Enumerator implements ports.DestinationEnumerator over the sub-directories of an
// output directory, each named after a key ("bflat_maj", "e_min").
type Enumerator struct {
	BasePath string
	Logger   *slog.Logger
}

var _ ports.DestinationEnumerator = (*Enumerator)(nil)

// NewEnumerator creates an Enumerator. If basePath is empty, it defaults to "outputs".
func NewEnumerator(basePath string, logger *slog.Logger) *Enumerator {
	if basePath == "" {
		basePath = "outputs"
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Enumerator{BasePath: basePath, Logger: logger}
}

// Destinations lists the folders whose suffix matches mode ("maj" or "min").
// Folders whose names do not parse into a key are skipped with a warning.
func (e *Enumerator) Destinations(ctx context.Context, mode domain.Mode) ([]domain.Destination, error) {
	entries, err := os.ReadDir(e.BasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to list destinations: %w", err)
	}

	suffix := "maj"
	if !mode.IsMajor() {
		suffix = "min"
	}

	var dests []domain.Destination
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		d, err := domain.ParseDestination(entry.Name())
		if err != nil {
			e.Logger.Warn("Skipping output folder", "folder", entry.Name(), "err", err)
			continue
		}
		dests = append(dests, d)
	}
	return dests, nil
}
