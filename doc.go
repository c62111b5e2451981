/*
Package transposer rewrites Roman-numeral harmonic analyses into other keys.

An analysis is plain text such as "I (B) V/V (E) V I", where a parenthesized one- or
two-character note name marks a local key change. Transposing the analysis from A
major to C major re-spells those notes for the destination key ("I (D) V/V (G) V I")
and leaves every other character untouched.

# Concept

The core is pure and lives in pkg/domain: building the sharp- or flat-spelled scale
of a key, aligning two scales into a key map, locating annotations and splicing the
re-spelled notes back into the text. Everything else is an adapter: documents come
from a ports.Source, destination keys from a ports.DestinationEnumerator and results
go to a ports.Sink (files, memory or Redis). The same core is served over HTTP and
MCP.

# Usage

	out, _, err := transposer.TransposeText("I (B) V",
		domain.Key{Tonic: "A", Mode: domain.Major},
		domain.Key{Tonic: "C", Mode: domain.Major})
	// out == "I (D) V"

For batch runs over a directory of pieces:

	eng, err := transposer.New(
		transposer.WithSource(file.NewSource("flattened_outputs")),
		transposer.WithEnumerator(file.NewEnumerator("outputs", logger)),
		transposer.WithSink(file.NewSink("outputs")),
	)
	report, err := eng.Run(ctx, "bwv269")
*/
package transposer
