package fingerprint

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidKind is matched by every *InvalidKindError.
	ErrInvalidKind = errors.New("invalid fingerprint kind")

	// ErrWidthMismatch is matched by every *WidthMismatchError.
	ErrWidthMismatch = errors.New("fingerprint width mismatch")

	// ErrInvalidHex is returned when a hex encoded fingerprint cannot be decoded.
	ErrInvalidHex = errors.New("invalid hex fingerprint")
)

// InvalidKindError reports a kind tag or bit width that cannot be used.
type InvalidKindError struct {
	Tag    string
	NBits  int
	Reason string
}

func (e *InvalidKindError) Error() string {
	return fmt.Sprintf("invalid fingerprint kind %q (nbits=%d): %s", e.Tag, e.NBits, e.Reason)
}

func (e *InvalidKindError) Is(target error) bool { return target == ErrInvalidKind }

// WidthMismatchError indicates a fingerprint whose span differs from the
// expected span (in words).
type WidthMismatchError struct {
	Expected int
	Actual   int
}

func (e *WidthMismatchError) Error() string {
	return fmt.Sprintf("fingerprint width mismatch: expected %d words, got %d", e.Expected, e.Actual)
}

func (e *WidthMismatchError) Is(target error) bool { return target == ErrWidthMismatch }

// CheckWidth returns a *WidthMismatchError if fp does not have span words.
func CheckWidth(span int, fp Fingerprint) error {
	if len(fp) != span {
		return &WidthMismatchError{Expected: span, Actual: len(fp)}
	}
	return nil
}
