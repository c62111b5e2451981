package domain

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Destination is a key to transpose into, named the way output folders are ("bflat_maj").
type Destination struct {
	Name string `json:"name"`
	Key  Key    `json:"key"`
}

// DestinationName returns the folder label for a key: letter, optional "flat"/"sharp",
// then "_maj" or "_min".
func DestinationName(k Key) string {
	var sb strings.Builder
	sb.WriteRune(unicode.ToLower(k.Tonic.Letter()))
	switch k.Tonic.Accidental() {
	case FlatGlyph:
		sb.WriteString("flat")
	case SharpGlyph:
		sb.WriteString("sharp")
	}
	if k.Major() {
		sb.WriteString("_maj")
	} else {
		sb.WriteString("_min")
	}
	return sb.String()
}

// NewDestination pairs a key with its canonical folder label.
func NewDestination(k Key) Destination {
	return Destination{Name: DestinationName(k), Key: k}
}

// ParseDestination reads a folder label. The label ends in "maj" or "min" preceded
// by one separator character; the first character is the tonic letter and a
// "flat" or "sharp" suffix adds the accidental.
func ParseDestination(label string) (Destination, error) {
	var mode Mode
	switch {
	case strings.HasSuffix(label, "maj"):
		mode = Major
	case strings.HasSuffix(label, "min"):
		mode = Minor
	default:
		return Destination{}, fmt.Errorf("%w: %q has no maj/min suffix", ErrInvalidDestination, label)
	}
	if len(label) < 5 {
		return Destination{}, fmt.Errorf("%w: %q has no tonic", ErrInvalidDestination, label)
	}
	keyStr := label[:len(label)-4]

	r, _ := utf8.DecodeRuneInString(keyStr)
	tonic := string(unicode.ToUpper(r))
	switch {
	case strings.HasSuffix(keyStr, "flat"):
		tonic += FlatGlyph
	case strings.HasSuffix(keyStr, "sharp"):
		tonic += SharpGlyph
	}

	n := NoteName(tonic)
	if !n.IsValid() {
		return Destination{}, fmt.Errorf("%w: %q has no valid tonic", ErrInvalidDestination, label)
	}
	return Destination{Name: label, Key: Key{Tonic: n, Mode: mode}}, nil
}

var (
	majorTonics = []NoteName{"C", "G", "D", "A", "E", "B", "F#", "C#", "F", "B♭", "E♭", "A♭", "D♭", "G♭", "C♭"}
	minorTonics = []NoteName{"A", "E", "B", "F#", "C#", "G#", "D#", "A#", "D", "G", "C", "F", "B♭", "E♭", "A♭"}
)

// AllDestinations lists the fifteen conventional keys of a mode, ordered around the circle of fifths.
func AllDestinations(mode Mode) []Destination {
	tonics := majorTonics
	if !mode.IsMajor() {
		tonics = minorTonics
	}
	out := make([]Destination, len(tonics))
	for i, t := range tonics {
		out[i] = NewDestination(Key{Tonic: t, Mode: mode})
	}
	return out
}
