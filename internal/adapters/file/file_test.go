package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/transposer/internal/adapters/file"
	"github.com/aretw0/transposer/internal/testutils"
	"github.com/aretw0/transposer/pkg/domain"
	"github.com/aretw0/transposer/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSink_Contract(t *testing.T) {
	ports.RunSinkContract(t, file.NewSink(t.TempDir()))
}

func TestFileSink_Layout(t *testing.T) {
	dir := t.TempDir()
	sink := file.NewSink(dir)
	d := domain.NewDestination(domain.Key{Tonic: "E♭", Mode: domain.Major})

	require.NoError(t, sink.Write(context.Background(), ports.Result{Piece: "bwv1", Destination: d, Text: "I (B♭)\n"}))

	data, err := os.ReadFile(filepath.Join(dir, "eflat_maj", "bwv1.txt"))
	require.NoError(t, err)
	assert.Equal(t, "I (B♭)\n", string(data))

	leftovers, err := filepath.Glob(filepath.Join(dir, "eflat_maj", "tmp-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestFileSource_Load(t *testing.T) {
	input, _ := testutils.SetupWorkspace(t, map[string]string{"bwv1": "M: 4/4\nK: d\n---\ni (F) V\n"})
	src := file.NewSource(input)

	a, err := src.Load(context.Background(), "bwv1")
	require.NoError(t, err)
	assert.Equal(t, domain.Key{Tonic: "D", Mode: domain.Minor}, a.Key)
	assert.Equal(t, "i (F) V\n", a.Body)

	_, err = src.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, ports.ErrPieceNotFound)
}

func TestFileEnumerator_Destinations(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"c_maj", "bflat_maj", "fsharp_min", "a_min", "notes", "h_maj"} {
		require.NoError(t, os.Mkdir(filepath.Join(dir, name), 0755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "g_maj"), nil, 0644))

	enum := file.NewEnumerator(dir, nil)

	major, err := enum.Destinations(context.Background(), domain.Major)
	require.NoError(t, err)
	assert.Equal(t, []domain.Destination{
		{Name: "bflat_maj", Key: domain.Key{Tonic: "B♭", Mode: domain.Major}},
		{Name: "c_maj", Key: domain.Key{Tonic: "C", Mode: domain.Major}},
	}, major)

	minor, err := enum.Destinations(context.Background(), domain.Minor)
	require.NoError(t, err)
	assert.Equal(t, []domain.Destination{
		{Name: "a_min", Key: domain.Key{Tonic: "A", Mode: domain.Minor}},
		{Name: "fsharp_min", Key: domain.Key{Tonic: "F#", Mode: domain.Minor}},
	}, minor)

	_, err = file.NewEnumerator(filepath.Join(dir, "missing"), nil).Destinations(context.Background(), domain.Major)
	assert.Error(t, err)
}
