package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/transposer/pkg/domain"
	"github.com/aretw0/transposer/pkg/ports"
)

// Sink implements ports.Sink using the local filesystem.
// A result is stored at <BasePath>/<destination>/<piece>.txt.
type Sink struct {
	BasePath string
}

var _ ports.Sink = (*Sink)(nil)

// NewSink creates a Sink. If basePath is empty, it defaults to "outputs".
func NewSink(basePath string) *Sink {
	if basePath == "" {
		basePath = "outputs"
	}
	return &Sink{BasePath: basePath}
}

func (s *Sink) path(piece, destination string) string {
	return filepath.Join(s.BasePath, destination, piece+Ext)
}

// Write persists the result atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Sink) Write(ctx context.Context, res ports.Result) error {
	if res.Piece == "" || res.Destination.Name == "" {
		return fmt.Errorf("piece and destination cannot be empty")
	}

	dir := filepath.Join(s.BasePath, res.Destination.Name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to ensure destination directory: %w", err)
	}

	// Same directory as the target so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(dir, "tmp-"+res.Piece+"-*"+Ext)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // no-op once renamed
	}()

	if _, err := tmpFile.WriteString(res.Text); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	destPath := s.path(res.Piece, res.Destination.Name)
	// On Windows, os.Rename fails if dest exists.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing result for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to result: %w", err)
	}
	return nil
}

// Read loads a stored result. The destination key is recovered from the folder name.
func (s *Sink) Read(ctx context.Context, piece, destination string) (*ports.Result, error) {
	data, err := os.ReadFile(s.path(piece, destination))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ports.ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to read result: %w", err)
	}

	d, err := domain.ParseDestination(destination)
	if err != nil {
		d = domain.Destination{Name: destination}
	}
	return &ports.Result{Piece: piece, Destination: d, Text: string(data)}, nil
}

// List returns the destination folders holding a result for piece.
func (s *Sink) List(ctx context.Context, piece string) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := os.Stat(s.path(piece, entry.Name())); err == nil {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}
