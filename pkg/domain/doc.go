/*
Package domain contains the music-theoretic core of the transposer.

It is kept pure and free of I/O: every function here takes its inputs by value,
returns new values and never touches files, sockets or global mutable state.
Adapters in pkg/adapters and internal/adapters supply text and persist results.

# Key Entities

  - NoteName: a spelled pitch class such as "C", "F#" or "B♭".
  - Key: a tonic NoteName plus a Mode (major or minor).
  - Scale: the 12 (sharp) or 13 (flat) spellings rotated to start on the tonic.
  - KeyMap: the position-aligned correspondence between two scales.
  - Annotation: a parenthesized 1–2 character note reference inside analysis text.

# Pipeline

	orig, _ := domain.BuildScale("A", true)
	dest, _ := domain.BuildScale("C", true)
	km := domain.BuildKeyMap(orig, dest)
	res := domain.LocateAnnotations("I (B) V")
	out, _ := domain.Transpose(res.Annotations, km, "I (B) V") // "I (D) V"
*/
package domain
