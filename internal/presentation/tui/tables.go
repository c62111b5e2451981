package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/transposer/pkg/domain"
)

// ScaleMarkdown renders a rotated scale as a markdown table, one column per degree.
func ScaleMarkdown(key domain.Key, scale domain.Scale) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s (%s)\n\n", key, domain.ConventionFor(key.Tonic, key.Major()))

	header := make([]string, len(scale))
	sep := make([]string, len(scale))
	for i := range scale {
		header[i] = fmt.Sprint(i)
		sep[i] = "---"
	}
	fmt.Fprintf(&sb, "| %s |\n", strings.Join(header, " | "))
	fmt.Fprintf(&sb, "| %s |\n", strings.Join(sep, " | "))
	fmt.Fprintf(&sb, "| %s |\n", strings.Join(scale.Strings(), " | "))
	return sb.String()
}

// KeyMapMarkdown renders key map entries as a two-column markdown table.
func KeyMapMarkdown(from, to domain.Key, entries []domain.KeyMapEntry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s → %s\n\n", from, to)
	fmt.Fprintf(&sb, "| %s | %s |\n", from.Label(), to.Label())
	sb.WriteString("| --- | --- |\n")
	for _, e := range entries {
		fmt.Fprintf(&sb, "| %s | %s |\n", e.From, e.To)
	}
	return sb.String()
}
