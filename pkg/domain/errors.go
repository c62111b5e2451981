package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownKey is returned when a tonic spelling is not present in the selected reference table.
var ErrUnknownKey = errors.New("unknown key")

// ErrUnmappedNote is returned when an annotation has no entry in the key map.
var ErrUnmappedNote = errors.New("unmapped note")

// ErrMissingKey is returned when an analysis header has no "K:" line.
var ErrMissingKey = errors.New("missing key header")

// ErrInvalidDestination is returned when a destination label cannot be parsed into a key.
var ErrInvalidDestination = errors.New("invalid destination")

// UnknownKeyError carries the tonic and the table it was looked up in.
type UnknownKeyError struct {
	Tonic      NoteName
	Convention Convention
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown key %q in %s table", string(e.Tonic), e.Convention)
}

// Is reports whether target is ErrUnknownKey.
func (e *UnknownKeyError) Is(target error) bool {
	return target == ErrUnknownKey
}

// UnmappedNoteError reports an annotation whose text is not covered by the key map.
type UnmappedNoteError struct {
	Note       string
	Annotation Annotation
}

func (e *UnmappedNoteError) Error() string {
	return fmt.Sprintf("unmapped note %q in annotation at [%d, %d)", e.Note, e.Annotation.Open, e.Annotation.Close)
}

// Is reports whether target is ErrUnmappedNote.
func (e *UnmappedNoteError) Is(target error) bool {
	return target == ErrUnmappedNote
}
