package domain_test

import (
	"testing"

	"github.com/aretw0/transposer/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustScale(t *testing.T, tonic domain.NoteName, major bool) domain.Scale {
	t.Helper()
	s, err := domain.BuildScale(tonic, major)
	require.NoError(t, err)
	return s
}

func TestBuildKeyMap_Identity(t *testing.T) {
	for _, d := range append(domain.AllDestinations(domain.Major), domain.AllDestinations(domain.Minor)...) {
		s := mustScale(t, d.Key.Tonic, d.Key.Major())
		km := domain.BuildKeyMap(s, s)
		for _, n := range s {
			got, ok := km.Lookup(string(n))
			require.True(t, ok, "%s: %s missing", d.Key, n)
			assert.Equal(t, n, got)
		}
	}
}

func TestBuildKeyMap_SameLength(t *testing.T) {
	km := domain.BuildKeyMap(mustScale(t, "A", true), mustScale(t, "C", true))

	cases := map[string]domain.NoteName{
		"A":  "C",
		"A#": "C#",
		"B":  "D",
		"a#": "C#",
		"G#": "B",
	}
	for in, want := range cases {
		got, ok := km.Lookup(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	assert.Equal(t, 12, km.Len())
}

func TestBuildKeyMap_PadsShorterOriginal(t *testing.T) {
	// C major (12) into D♭ major (13): A# is duplicated at the index of B.
	km := domain.BuildKeyMap(mustScale(t, "C", true), mustScale(t, "D♭", true))

	cases := map[string]domain.NoteName{
		"C":  "D♭",
		"G":  "A♭",
		"A":  "B♭",
		"A#": "C♭",
		"B":  "C",
	}
	for in, want := range cases {
		got, ok := km.Lookup(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	assert.Equal(t, 12, km.Len())
}

func TestBuildKeyMap_PadsShorterDestination(t *testing.T) {
	// F major (13) into G major (12): C# is duplicated at the index of B.
	km := domain.BuildKeyMap(mustScale(t, "F", true), mustScale(t, "G", true))

	cases := map[string]domain.NoteName{
		"F":  "G",
		"B♭": "C",
		"B":  "C#",
		"C♭": "C#",
		"C":  "D",
		"E":  "F#",
	}
	for in, want := range cases {
		got, ok := km.Lookup(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	assert.Equal(t, 13, km.Len())
}

func TestKeyMap_Entries(t *testing.T) {
	km := domain.BuildKeyMap(mustScale(t, "A", true), mustScale(t, "C", true))
	entries := km.Entries()
	require.Len(t, entries, 12)
	assert.Equal(t, domain.KeyMapEntry{From: "C", To: "D#"}, entries[0])
	assert.Equal(t, domain.KeyMapEntry{From: "B", To: "D"}, entries[11])
}
