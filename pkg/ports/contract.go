package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/transposer/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSinkContract runs a suite of tests to verify that a Sink implementation
// adheres to the defined interface contract.
func RunSinkContract(t *testing.T, sink Sink) {
	ctx := context.Background()
	piece := "contract-piece-" + time.Now().Format("20060102150405")

	cMajor := domain.NewDestination(domain.Key{Tonic: "C", Mode: domain.Major})
	bFlatMajor := domain.NewDestination(domain.Key{Tonic: "B♭", Mode: domain.Major})

	t.Run("Write and Read", func(t *testing.T) {
		res := Result{Piece: piece, Destination: cMajor, Text: "I (D) V\n"}
		require.NoError(t, sink.Write(ctx, res), "Write should not return error")

		got, err := sink.Read(ctx, piece, cMajor.Name)
		require.NoError(t, err, "Read should not return error")
		assert.Equal(t, res.Text, got.Text)
		assert.Equal(t, piece, got.Piece)
		assert.Equal(t, cMajor.Name, got.Destination.Name)
		assert.Equal(t, cMajor.Key, got.Destination.Key)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, sink.Write(ctx, Result{Piece: piece, Destination: cMajor, Text: "first"}))
		require.NoError(t, sink.Write(ctx, Result{Piece: piece, Destination: cMajor, Text: "second"}))

		got, err := sink.Read(ctx, piece, cMajor.Name)
		require.NoError(t, err)
		assert.Equal(t, "second", got.Text)
	})

	t.Run("Read Non-Existent", func(t *testing.T) {
		_, err := sink.Read(ctx, piece, "zsharp_maj")
		assert.ErrorIs(t, err, ErrResultNotFound)

		_, err = sink.Read(ctx, "missing-"+piece, cMajor.Name)
		assert.ErrorIs(t, err, ErrResultNotFound)
	})

	t.Run("Unicode Text", func(t *testing.T) {
		res := Result{Piece: piece, Destination: bFlatMajor, Text: "I (E♭) V (b♭)\n"}
		require.NoError(t, sink.Write(ctx, res))

		got, err := sink.Read(ctx, piece, bFlatMajor.Name)
		require.NoError(t, err)
		assert.Equal(t, res.Text, got.Text)
		assert.Equal(t, bFlatMajor.Key, got.Destination.Key)
	})

	t.Run("List", func(t *testing.T) {
		names, err := sink.List(ctx, piece)
		require.NoError(t, err)
		assert.Equal(t, []string{bFlatMajor.Name, cMajor.Name}, names)

		empty, err := sink.List(ctx, "missing-"+piece)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})
}
