package domain

import (
	"sort"
	"strings"
)

// KeyMap maps an original-key spelling to the destination spelling at the same aligned position.
// It is immutable once built.
type KeyMap struct {
	m map[NoteName]NoteName
}

// KeyMapEntry is one original → destination pair.
type KeyMapEntry struct {
	From NoteName `json:"from"`
	To   NoteName `json:"to"`
}

// BuildKeyMap pairs the two scales position by position.
//
// When the lengths differ the shorter scale is padded first: at the index of "B"
// in the longer scale, a copy of shorter[index % len(shorter)] is inserted. The
// alignment is positional, not pitch-exact. Later duplicates in the original
// scale overwrite earlier pairs.
func BuildKeyMap(original, destination Scale) KeyMap {
	orig := append(Scale(nil), original...)
	dest := append(Scale(nil), destination...)

	switch {
	case len(orig) > len(dest):
		dest = pad(dest, orig.Index("B"))
	case len(orig) < len(dest):
		orig = pad(orig, dest.Index("B"))
	}

	n := len(orig)
	if len(dest) < n {
		n = len(dest)
	}
	m := make(map[NoteName]NoteName, n)
	for i := 0; i < n; i++ {
		m[orig[i]] = dest[i]
	}
	return KeyMap{m: m}
}

func pad(shorter Scale, at int) Scale {
	if len(shorter) == 0 {
		return shorter
	}
	if at < 0 || at > len(shorter) {
		at = len(shorter)
	}
	dup := shorter[at%len(shorter)]
	out := make(Scale, 0, len(shorter)+1)
	out = append(out, shorter[:at]...)
	out = append(out, dup)
	out = append(out, shorter[at:]...)
	return out
}

// Lookup resolves an annotation's text. The lookup is case-insensitive on the original spelling.
func (k KeyMap) Lookup(note string) (NoteName, bool) {
	v, ok := k.m[NoteName(strings.ToUpper(note))]
	return v, ok
}

// Len returns the number of distinct original spellings.
func (k KeyMap) Len() int { return len(k.m) }

// Entries returns the pairs ordered by the original spelling's pitch class, then spelling.
func (k KeyMap) Entries() []KeyMapEntry {
	out := make([]KeyMapEntry, 0, len(k.m))
	for from, to := range k.m {
		out = append(out, KeyMapEntry{From: from, To: to})
	}
	sort.Slice(out, func(i, j int) bool {
		pi, _ := out[i].From.PitchClass()
		pj, _ := out[j].From.PitchClass()
		if pi != pj {
			return pi < pj
		}
		return out[i].From < out[j].From
	})
	return out
}
