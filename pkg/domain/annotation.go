package domain

import (
	"strings"
	"unicode/utf8"
)

// Annotation is a located parenthesized note reference. Open and Close are the
// byte offsets of "(" and ")" in the text the annotation was located in.
type Annotation struct {
	Open  int `json:"open"`
	Close int `json:"close"`
}

// Inner returns the raw text between the parentheses.
func (a Annotation) Inner(text string) string {
	return text[a.Open+1 : a.Close]
}

// LocateResult is the outcome of scanning a text for annotations.
type LocateResult struct {
	Annotations []Annotation `json:"annotations"`
	// Truncated is set when a "(" without a matching ")" stopped the scan.
	Truncated bool `json:"truncated"`
	// UnmatchedAt is the offset of that "(" when Truncated, -1 otherwise.
	UnmatchedAt int `json:"unmatched_at"`
}

// LocateAnnotations scans text left to right for parenthesized spans whose trimmed
// interior is one or two characters long. Nesting is not interpreted; an unmatched
// "(" ends the scan.
func LocateAnnotations(text string) LocateResult {
	res := LocateResult{UnmatchedAt: -1}
	start := 0
	for {
		i := strings.IndexByte(text[start:], '(')
		if i < 0 {
			return res
		}
		open := start + i

		j := strings.IndexByte(text[open+1:], ')')
		if j < 0 {
			res.Truncated = true
			res.UnmatchedAt = open
			return res
		}
		close := open + 1 + j

		n := utf8.RuneCountInString(strings.TrimSpace(text[open+1 : close]))
		if n == 1 || n == 2 {
			res.Annotations = append(res.Annotations, Annotation{Open: open, Close: close})
		}
		start = close + 1
	}
}
