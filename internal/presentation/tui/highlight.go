package tui

import (
	"strings"

	"github.com/aretw0/transposer/pkg/domain"
	"github.com/muesli/termenv"
)

// Highlight colors the interior of each annotation span in text.
// Spans must be in order and refer to text; out-of-range spans are skipped.
// With the Ascii profile the text is returned unchanged.
func Highlight(text string, spans []domain.Annotation, p termenv.Profile) string {
	if p == termenv.Ascii || len(spans) == 0 {
		return text
	}

	color := p.Color("#f472b6")
	var sb strings.Builder
	last := 0
	for _, a := range spans {
		if a.Open < last || a.Close > len(text) || a.Open >= a.Close {
			continue
		}
		sb.WriteString(text[last : a.Open+1])
		sb.WriteString(termenv.String(a.Inner(text)).Foreground(color).Bold().String())
		last = a.Close
	}
	sb.WriteString(text[last:])
	return sb.String()
}
