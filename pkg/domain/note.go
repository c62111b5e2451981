package domain

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Accidental glyphs as they appear in analysis text and reference tables.
const (
	SharpGlyph = "#"
	FlatGlyph  = "♭"
)

// NoteName is a spelled pitch class: a letter A–G optionally followed by one accidental glyph.
// Case is significant; lowercase letters mark minor-key or chord-root contexts in analysis text.
type NoteName string

var letterPitch = map[rune]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

// Letter returns the upper-cased letter component, or 0 when the name is empty.
func (n NoteName) Letter() rune {
	r, _ := utf8.DecodeRuneInString(string(n))
	if r == utf8.RuneError {
		return 0
	}
	return unicode.ToUpper(r)
}

// Accidental returns the glyph following the letter ("", "#" or "♭").
func (n NoteName) Accidental() string {
	_, size := utf8.DecodeRuneInString(string(n))
	return string(n)[size:]
}

// IsFlat reports whether the name carries the flat glyph.
func (n NoteName) IsFlat() bool { return n.Accidental() == FlatGlyph }

// IsSharp reports whether the name carries the sharp glyph.
func (n NoteName) IsSharp() bool { return n.Accidental() == SharpGlyph }

// IsValid reports whether n is a letter A–G (either case) with at most one accidental glyph.
func (n NoteName) IsValid() bool {
	if _, ok := letterPitch[n.Letter()]; !ok {
		return false
	}
	switch n.Accidental() {
	case "", SharpGlyph, FlatGlyph:
		return true
	}
	return false
}

// PitchClass returns the pitch class 0–11 (C = 0) the spelling denotes.
func (n NoteName) PitchClass() (int, bool) {
	if !n.IsValid() {
		return 0, false
	}
	pc := letterPitch[n.Letter()]
	switch n.Accidental() {
	case SharpGlyph:
		pc++
	case FlatGlyph:
		pc--
	}
	return (pc + 12) % 12, true
}

// Upper returns the name with its letter upper-cased.
func (n NoteName) Upper() NoteName {
	return NoteName(strings.ToUpper(string(n)))
}

// Lower returns the name with its first rune lower-cased.
func (n NoteName) Lower() NoteName {
	return NoteName(lowerFirst(string(n)))
}

// ParseNoteName accepts user-typed spellings ("Bb", "bb", "B♭", "f#", "C") and
// returns the canonical upper-case NoteName used by the reference tables.
// An ASCII "b" after the letter is read as a flat.
func ParseNoteName(s string) (NoteName, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("empty note name")
	}
	r, size := utf8.DecodeRuneInString(s)
	letter := string(unicode.ToUpper(r))
	rest := s[size:]
	switch rest {
	case "":
	case "b", FlatGlyph:
		rest = FlatGlyph
	case SharpGlyph:
	default:
		return "", fmt.Errorf("invalid accidental %q in note %q", rest, s)
	}
	n := NoteName(letter + rest)
	if !n.IsValid() {
		return "", fmt.Errorf("invalid note name %q", s)
	}
	return n, nil
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

func firstIsLower(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r != utf8.RuneError && unicode.IsLower(r)
}
