package domain

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// HeaderSeparator divides the header lines from the analysis body.
const HeaderSeparator = "---"

// Analysis is a Roman-numeral analysis document: its header, its original key and the body text.
type Analysis struct {
	Piece  string   `json:"piece"`
	Key    Key      `json:"key"`
	Header []string `json:"header,omitempty"`
	Body   string   `json:"body"`
}

// ParseAnalysis reads a document of the form
//
//	M: 4/4
//	K: f#
//	---
//	i (A) III ...
//
// A lower-case key letter marks a minor key. Everything after the separator line
// is kept verbatim, line endings included.
func ParseAnalysis(piece string, r io.Reader) (*Analysis, error) {
	a := &Analysis{Piece: piece}
	br := bufio.NewReader(r)

	var body strings.Builder
	inBody := false
	foundKey := false
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			switch trimmed := strings.TrimSpace(line); {
			case inBody:
				body.WriteString(line)
			case trimmed == HeaderSeparator:
				inBody = true
			case trimmed == "":
			case strings.HasPrefix(trimmed, "K"):
				key, perr := parseKeyHeader(trimmed)
				if perr != nil {
					return nil, fmt.Errorf("piece %q: %w", piece, perr)
				}
				a.Key = key
				foundKey = true
			default:
				a.Header = append(a.Header, trimmed)
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read piece %q: %w", piece, err)
		}
	}

	if !foundKey {
		return nil, fmt.Errorf("piece %q: %w", piece, ErrMissingKey)
	}
	a.Body = body.String()
	return a, nil
}

func parseKeyHeader(line string) (Key, error) {
	v := strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(line, "K"), ":"))
	r, _ := utf8.DecodeRuneInString(v)
	if r == utf8.RuneError {
		return Key{}, ErrMissingKey
	}
	tonic, err := ParseNoteName(v)
	if err != nil {
		return Key{}, fmt.Errorf("invalid key header %q: %w", line, err)
	}
	return Key{Tonic: tonic, Mode: ModeOf(!unicode.IsLower(r))}, nil
}

// Format renders the analysis back into its document form with the given key.
func (a *Analysis) Format(key Key) string {
	var sb strings.Builder
	for _, h := range a.Header {
		sb.WriteString(h)
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "K: %s\n%s\n", key.Label(), HeaderSeparator)
	sb.WriteString(a.Body)
	return sb.String()
}
