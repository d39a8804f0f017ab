package practice

import "errors"

var (
	// ErrMalformedRecord marks stroke or pronunciation input that cannot be parsed.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrUnknownCharacter marks a target character absent from the stroke store.
	ErrUnknownCharacter = errors.New("unknown character")
	// ErrInvalidSize marks a cell size that leaves no room for a single cell.
	ErrInvalidSize = errors.New("invalid size")
	// ErrEmptySyllabus marks a curriculum requested for zero characters.
	ErrEmptySyllabus = errors.New("empty syllabus")
	// ErrInvalidPolicy marks curriculum tuning values that would stall the sequence.
	ErrInvalidPolicy = errors.New("invalid curriculum policy")
)
