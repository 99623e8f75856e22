package layout

import (
	"errors"
	"fmt"
)

// Error classes. Concrete errors match one of these with errors.Is.
var (
	ErrBounds = errors.New("layout: buffer too short")
	ErrFormat = errors.New("layout: format mismatch")
)

// BoundsError reports an access past the end of a buffer.
type BoundsError struct {
	Offset int // Offset the access started at
	Need   int // Bytes requested
	Have   int // Length of the buffer
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("layout: %d bytes at offset %#x exceed buffer of %d bytes", e.Need, e.Offset, e.Have)
}

// Is matches ErrBounds.
func (e *BoundsError) Is(target error) bool {
	return target == ErrBounds
}

// AssertionError reports a field whose decoded value did not match the
// value its declaration expects.
type AssertionError struct {
	Struct   string
	Field    string
	Offset   int
	Expected uint64
	Actual   uint64
	Err      error // custom error from ExpectFunc, nil otherwise
}

func (e *AssertionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("layout: %s.%s: %v", e.Struct, e.Field, e.Err)
	}
	return fmt.Sprintf("layout: %s.%s at offset %#x: expected %#x, got %#x",
		e.Struct, e.Field, e.Offset, e.Expected, e.Actual)
}

func (e *AssertionError) Unwrap() error {
	return e.Err
}

// Is matches ErrFormat.
func (e *AssertionError) Is(target error) bool {
	return target == ErrFormat
}
