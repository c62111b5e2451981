package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupWorkspace creates a temporary input directory holding the given pieces
// ("<piece>.txt") and an output directory with one empty folder per destination label.
// It returns both absolute paths and fails the test immediately on error.
func SetupWorkspace(t *testing.T, pieces map[string]string, folders ...string) (input, output string) {
	t.Helper()

	tmpDir := t.TempDir()
	absPath, err := filepath.Abs(tmpDir)
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	input = filepath.Join(absPath, "flattened_outputs")
	output = filepath.Join(absPath, "outputs")
	require.NoError(t, os.MkdirAll(input, 0755), "Failed to create input dir")
	require.NoError(t, os.MkdirAll(output, 0755), "Failed to create output dir")

	for piece, doc := range pieces {
		require.NoError(t, os.WriteFile(filepath.Join(input, piece+".txt"), []byte(doc), 0644), "Failed to write piece %s", piece)
	}
	for _, f := range folders {
		require.NoError(t, os.MkdirAll(filepath.Join(output, f), 0755), "Failed to create folder %s", f)
	}
	return input, output
}
