package domain_test

import (
	"testing"

	"github.com/aretw0/transposer/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func notes(ss ...string) domain.Scale {
	out := make(domain.Scale, len(ss))
	for i, s := range ss {
		out[i] = domain.NoteName(s)
	}
	return out
}

func TestBuildScale(t *testing.T) {
	tests := []struct {
		name  string
		tonic domain.NoteName
		major bool
		want  domain.Scale
	}{
		{"A major", "A", true, notes("A", "A#", "B", "C", "C#", "D", "D#", "E", "F", "F#", "G", "G#")},
		{"C major", "C", true, notes("C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B")},
		{"F major uses flats", "F", true, notes("F", "G♭", "G", "A♭", "A", "B♭", "B", "C♭", "C", "D♭", "D", "E♭", "E")},
		{"B flat major", "B♭", true, notes("B♭", "B", "C♭", "C", "D♭", "D", "E♭", "E", "F", "G♭", "G", "A♭", "A")},
		{"D minor uses flats", "D", false, notes("D", "E♭", "E", "F", "G♭", "G", "A♭", "A", "B♭", "B", "C♭", "C", "D♭")},
		{"E minor keeps sharps", "E", false, notes("E", "F", "F#", "G", "G#", "A", "A#", "B", "C", "C#", "D", "D#")},
		{"F sharp minor keeps sharps", "F#", false, notes("F#", "G", "G#", "A", "A#", "B", "C", "C#", "D", "D#", "E", "F")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.BuildScale(tt.tonic, tt.major)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildScale_UnknownKey(t *testing.T) {
	tests := []struct {
		name  string
		tonic domain.NoteName
		major bool
		conv  domain.Convention
	}{
		{"lowercase tonic", "a", true, domain.SharpConvention},
		{"not a note", "H", true, domain.SharpConvention},
		{"flat missing from table", "F♭", true, domain.FlatConvention},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scale, err := domain.BuildScale(tt.tonic, tt.major)
			assert.Nil(t, scale)
			require.ErrorIs(t, err, domain.ErrUnknownKey)

			var uk *domain.UnknownKeyError
			require.ErrorAs(t, err, &uk)
			assert.Equal(t, tt.tonic, uk.Tonic)
			assert.Equal(t, tt.conv, uk.Convention)
		})
	}
}

func TestConventionFor(t *testing.T) {
	assert.Equal(t, domain.FlatConvention, domain.ConventionFor("E♭", true))
	assert.Equal(t, domain.FlatConvention, domain.ConventionFor("F", true))
	assert.Equal(t, domain.FlatConvention, domain.ConventionFor("G", false))
	assert.Equal(t, domain.SharpConvention, domain.ConventionFor("G", true))
	assert.Equal(t, domain.SharpConvention, domain.ConventionFor("B", false))
	assert.Equal(t, domain.SharpConvention, domain.ConventionFor("C#", false))
}

func TestBuildScale_AllConventionalKeys(t *testing.T) {
	for _, mode := range []domain.Mode{domain.Major, domain.Minor} {
		for _, d := range domain.AllDestinations(mode) {
			t.Run(d.Key.String(), func(t *testing.T) {
				scale, err := d.Key.Scale()
				require.NoError(t, err)

				conv := domain.ConventionFor(d.Key.Tonic, d.Key.Major())
				assert.Len(t, scale, conv.Len())
				assert.Equal(t, d.Key.Tonic.Letter(), scale.Tonic().Letter())
			})
		}
	}
}

func TestBuildScale_DoesNotShareTables(t *testing.T) {
	s1, err := domain.BuildScale("C", true)
	require.NoError(t, err)
	s1[0] = "X"

	s2, err := domain.BuildScale("C", true)
	require.NoError(t, err)
	assert.Equal(t, domain.NoteName("C"), s2[0])
}
