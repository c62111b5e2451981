package transposer_test

import (
	"context"
	"testing"

	"github.com/aretw0/transposer"
	"github.com/aretw0/transposer/pkg/adapters/memory"
	"github.com/aretw0/transposer/pkg/domain"
	"github.com/aretw0/transposer/pkg/ports"
	"github.com/aretw0/transposer/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransposeText(t *testing.T) {
	out, loc, err := transposer.TransposeText("I (B) V",
		domain.Key{Tonic: "A", Mode: domain.Major},
		domain.Key{Tonic: "C", Mode: domain.Major})
	require.NoError(t, err)
	assert.Equal(t, "I (D) V", out)
	assert.Len(t, loc.Annotations, 1)
}

func TestTransposeText_Errors(t *testing.T) {
	_, _, err := transposer.TransposeText("I", domain.Key{Tonic: "F♭", Mode: domain.Major}, domain.Key{Tonic: "C", Mode: domain.Major})
	assert.ErrorIs(t, err, domain.ErrUnknownKey)

	_, loc, err := transposer.TransposeText("I (X) (Y", domain.Key{Tonic: "C", Mode: domain.Major}, domain.Key{Tonic: "G", Mode: domain.Major})
	assert.ErrorIs(t, err, domain.ErrUnmappedNote)
	assert.True(t, loc.Truncated)
}

func TestNew_RequiresSource(t *testing.T) {
	_, err := transposer.New()
	assert.Error(t, err)
}

func TestEngine_Run(t *testing.T) {
	src := memory.NewSource(map[string]string{
		"chorale": "M: 4/4\nK: e\n---\ni (B) iv (a)\n",
	})
	a := domain.NewDestination(domain.Key{Tonic: "A", Mode: domain.Minor})
	d := domain.NewDestination(domain.Key{Tonic: "D", Mode: domain.Minor})
	g := domain.NewDestination(domain.Key{Tonic: "G", Mode: domain.Major})
	sink := memory.NewSink()

	eng, err := transposer.New(
		transposer.WithSource(src),
		transposer.WithEnumerator(memory.NewEnumerator(a, d, g)),
		transposer.WithSink(sink),
		transposer.WithRunnerOptions(runner.WithWorkers(1)),
	)
	require.NoError(t, err)

	report, err := eng.Run(context.Background(), "chorale")
	require.NoError(t, err)
	require.Len(t, report.Results, 2, "only minor destinations")

	names, err := sink.List(context.Background(), "chorale")
	require.NoError(t, err)
	assert.Equal(t, []string{"a_min", "d_min"}, names)

	res, err := sink.Read(context.Background(), "chorale", "a_min")
	require.NoError(t, err)
	assert.Equal(t, "i (E) iv (d)\n", res.Text)
}

func TestEngine_Run_MissingPiece(t *testing.T) {
	eng, err := transposer.New(transposer.WithSource(memory.NewSource(nil)))
	require.NoError(t, err)

	_, err = eng.Run(context.Background(), "nope")
	assert.ErrorIs(t, err, ports.ErrPieceNotFound)
}
