package document

import (
	"errors"
	"fmt"
)

var (
	// ErrLengthMismatch is returned when structures and identifiers differ in length.
	ErrLengthMismatch = errors.New("structures and identifiers differ in length")

	// ErrIndexOutOfRange is matched by every *IndexOutOfRangeError.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrGeneration is matched by every *GenerationError.
	ErrGeneration = errors.New("fingerprint generation failed")
)

// IndexOutOfRangeError reports an accessor called with an invalid row index.
type IndexOutOfRangeError struct {
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Len)
}

func (e *IndexOutOfRangeError) Is(target error) bool { return target == ErrIndexOutOfRange }

// GenerationError reports a structure the generator could not turn into a
// fingerprint of the document's width.
//
// The original underlying error can be accessed via errors.Unwrap.
type GenerationError struct {
	Index     int
	ID        string
	Structure string
	cause     error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate fingerprint for entry %d (id=%q, structure=%q): %v", e.Index, e.ID, e.Structure, e.cause)
}

func (e *GenerationError) Unwrap() error { return e.cause }

func (e *GenerationError) Is(target error) bool { return target == ErrGeneration }
