package domain

import "fmt"

// Transpose rewrites every annotation's note to its key map spelling and returns the new text.
// Annotations must come from LocateAnnotations on the same text, in order.
func Transpose(annotations []Annotation, km KeyMap, text string) (string, error) {
	out, _, err := TransposeSpans(annotations, km, text)
	return out, err
}

// TransposeSpans is Transpose that also returns the annotations' positions in the rewritten text.
//
// Each rewrite may change the text length (e.g. "C" becomes "D♭"); a running offset
// shifts every later span by the accumulated drift. The replacement is spliced into
// the exact [start, end) span rather than searched for.
func TransposeSpans(annotations []Annotation, km KeyMap, text string) (string, []Annotation, error) {
	spans := make([]Annotation, 0, len(annotations))
	offset := 0
	floor := 0
	for _, a := range annotations {
		start := a.Open + 1 + offset
		end := a.Close + offset
		if start-1 < floor || end < start || end > len(text) {
			return "", nil, fmt.Errorf("annotation [%d, %d) out of order or out of range", a.Open, a.Close)
		}

		inner := text[start:end]
		repl, ok := km.Lookup(inner)
		if !ok {
			return "", nil, &UnmappedNoteError{Note: inner, Annotation: a}
		}
		replacement := string(repl)
		if firstIsLower(inner) {
			replacement = lowerFirst(replacement)
		}

		offset += len(replacement) - len(inner)
		text = text[:start] + replacement + text[end:]

		newEnd := start + len(replacement)
		spans = append(spans, Annotation{Open: start - 1, Close: newEnd})
		floor = newEnd + 1
	}
	return text, spans, nil
}
