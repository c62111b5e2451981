package domain

import (
	"fmt"
	"strings"
)

// Mode is the tonality of a key.
type Mode string

const (
	Major Mode = "major"
	Minor Mode = "minor"
)

// ParseMode accepts "major"/"maj" and "minor"/"min" in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "major", "maj":
		return Major, nil
	case "minor", "min":
		return Minor, nil
	}
	return "", fmt.Errorf("invalid mode %q", s)
}

// ModeOf returns Major when major is true, Minor otherwise.
func ModeOf(major bool) Mode {
	if major {
		return Major
	}
	return Minor
}

// IsMajor reports whether the mode is major.
func (m Mode) IsMajor() bool { return m != Minor }

// Key is a tonic plus a mode. Tonic is stored upper-cased, as the reference tables spell it.
type Key struct {
	Tonic NoteName `json:"tonic" mapstructure:"tonic"`
	Mode  Mode     `json:"mode" mapstructure:"mode"`
}

// NewKey builds a key from a user-typed tonic and a mode flag.
func NewKey(tonic string, major bool) (Key, error) {
	n, err := ParseNoteName(tonic)
	if err != nil {
		return Key{}, err
	}
	return Key{Tonic: n, Mode: ModeOf(major)}, nil
}

// Major reports whether the key is major.
func (k Key) Major() bool { return k.Mode.IsMajor() }

// Label renders the key the way analysis headers do: upper-case tonic for major,
// lower-case tonic for minor (e.g. "B♭", "f#").
func (k Key) Label() string {
	if k.Major() {
		return string(k.Tonic)
	}
	return string(k.Tonic.Lower())
}

func (k Key) String() string {
	return fmt.Sprintf("%s %s", k.Tonic, k.Mode)
}

// Scale builds the key's rotated scale.
func (k Key) Scale() (Scale, error) {
	return BuildScale(k.Tonic, k.Major())
}
