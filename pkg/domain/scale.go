package domain

import "strings"

// Convention selects which reference table spells a key's scale.
type Convention int

const (
	SharpConvention Convention = iota
	FlatConvention
)

func (c Convention) String() string {
	if c == FlatConvention {
		return "flat"
	}
	return "sharp"
}

// Len returns the number of entries in the convention's reference table.
func (c Convention) Len() int {
	if c == FlatConvention {
		return len(flatTable)
	}
	return len(sharpTable)
}

var sharpTable = [12]NoteName{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// The flat table enumerates C♭ after B, the extra enharmonic alias the sharp table lacks.
var flatTable = [13]NoteName{"C", "D♭", "D", "E♭", "E", "F", "G♭", "G", "A♭", "A", "B♭", "B", "C♭"}

// Minor keys on these letters keep sharps.
var sharpMinorLetters = map[rune]bool{'E': true, 'A': true, 'B': true}

// Table returns a copy of the convention's unrotated reference table.
func (c Convention) Table() Scale {
	if c == FlatConvention {
		return append(Scale(nil), flatTable[:]...)
	}
	return append(Scale(nil), sharpTable[:]...)
}

// ConventionFor decides between sharp and flat spelling for a tonic.
//
// Rules, first match wins: a flat tonic uses flats; F major uses flats; a minor
// key on a natural letter other than E, A or B uses flats; everything else uses sharps.
func ConventionFor(tonic NoteName, major bool) Convention {
	switch {
	case tonic.IsFlat():
		return FlatConvention
	case major && tonic == "F":
		return FlatConvention
	case !major && tonic.Accidental() == "" && !sharpMinorLetters[tonic.Letter()]:
		return FlatConvention
	}
	return SharpConvention
}

// Scale is an ordered sequence of spellings rotated so index 0 is the tonic.
type Scale []NoteName

// Tonic returns the first entry.
func (s Scale) Tonic() NoteName {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

// Index returns the position of the first entry whose upper-cased spelling equals n upper-cased, or -1.
func (s Scale) Index(n NoteName) int {
	target := strings.ToUpper(string(n))
	for i, v := range s {
		if strings.ToUpper(string(v)) == target {
			return i
		}
	}
	return -1
}

// Strings returns the spellings as plain strings.
func (s Scale) Strings() []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[i] = string(v)
	}
	return out
}

// BuildScale returns the reference table for the tonic's convention, rotated to start on the tonic.
// The tonic must appear verbatim (case-sensitive) in that table.
func BuildScale(tonic NoteName, major bool) (Scale, error) {
	conv := ConventionFor(tonic, major)
	table := conv.Table()

	at := -1
	for i, n := range table {
		if n == tonic {
			at = i
			break
		}
	}
	if at < 0 {
		return nil, &UnknownKeyError{Tonic: tonic, Convention: conv}
	}

	scale := make(Scale, 0, len(table))
	scale = append(scale, table[at:]...)
	scale = append(scale, table[:at]...)
	return scale, nil
}
