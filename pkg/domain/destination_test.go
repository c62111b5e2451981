package domain_test

import (
	"testing"

	"github.com/aretw0/transposer/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDestination(t *testing.T) {
	tests := []struct {
		label string
		want  domain.Key
	}{
		{"c_maj", domain.Key{Tonic: "C", Mode: domain.Major}},
		{"bflat_maj", domain.Key{Tonic: "B♭", Mode: domain.Major}},
		{"f_sharp_min", domain.Key{Tonic: "F#", Mode: domain.Minor}},
		{"E-min", domain.Key{Tonic: "E", Mode: domain.Minor}},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			d, err := domain.ParseDestination(tt.label)
			require.NoError(t, err)
			assert.Equal(t, tt.label, d.Name)
			assert.Equal(t, tt.want, d.Key)
		})
	}
}

func TestParseDestination_Invalid(t *testing.T) {
	for _, label := range []string{"c", "_maj", "h_maj", "cmajor", ""} {
		_, err := domain.ParseDestination(label)
		assert.ErrorIs(t, err, domain.ErrInvalidDestination, label)
	}
}

func TestDestinationName_RoundTrip(t *testing.T) {
	for _, mode := range []domain.Mode{domain.Major, domain.Minor} {
		dests := domain.AllDestinations(mode)
		assert.Len(t, dests, 15)
		for _, d := range dests {
			parsed, err := domain.ParseDestination(d.Name)
			require.NoError(t, err, d.Name)
			assert.Equal(t, d, parsed)
		}
	}
	assert.Equal(t, "bflat_min", domain.DestinationName(domain.Key{Tonic: "B♭", Mode: domain.Minor}))
}
