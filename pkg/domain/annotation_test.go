package domain_test

import (
	"testing"

	"github.com/aretw0/transposer/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestLocateAnnotations(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		want      []domain.Annotation
		truncated bool
		at        int
	}{
		{"single", "I (B) V", []domain.Annotation{{Open: 2, Close: 4}}, false, -1},
		{"two letter", "(long text) (C#) V", []domain.Annotation{{Open: 12, Close: 15}}, false, -1},
		{"whitespace trimmed for length", "( b )", []domain.Annotation{{Open: 0, Close: 4}}, false, -1},
		{"flat glyph counts once", "(D♭)", []domain.Annotation{{Open: 0, Close: 5}}, false, -1},
		{"empty parens ignored", "() (   ) (abc)", nil, false, -1},
		{"nested not interpreted", "(x (B) y", nil, false, -1},
		{"unmatched stops scan", "I (B) V (C", []domain.Annotation{{Open: 2, Close: 4}}, true, 8},
		{"outer paren spans inner", "( (A) (B)", []domain.Annotation{{Open: 0, Close: 4}, {Open: 6, Close: 8}}, false, -1},
		{"no annotations", "I IV V I", nil, false, -1},
		{"empty", "", nil, false, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := domain.LocateAnnotations(tt.text)
			assert.Equal(t, tt.want, res.Annotations)
			assert.Equal(t, tt.truncated, res.Truncated)
			assert.Equal(t, tt.at, res.UnmatchedAt)
		})
	}
}
