// Package fixvec provides a length-prefixed vector with a fixed capacity,
// the shape in-game lists such as the active roster take in a save file.
package fixvec

import (
	"errors"
	"fmt"

	"github.com/ssargent/savekit/pkg/layout"
)

// ErrCapacity is matched by every CapacityError.
var ErrCapacity = errors.New("fixvec: capacity exceeded")

// CapacityError reports a push onto a full vector or a pop from an empty one.
type CapacityError struct {
	Op  string
	Len int
	Cap int
}

func (e *CapacityError) Error() string {
	if e.Op == "pop" {
		return "fixvec: pop from empty vector"
	}
	return fmt.Sprintf("fixvec: %s on full vector (%d/%d)", e.Op, e.Len, e.Cap)
}

// Is matches ErrCapacity.
func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacity
}

// Vec holds up to Cap elements in fixed storage. Elements at or past Len are
// logically absent but keep their storage, so bytes decoded there are
// written back unchanged.
type Vec[T any] struct {
	n     uint32
	items []T
}

// New returns an empty vector with the given capacity.
func New[T any](capacity int) *Vec[T] {
	v := &Vec[T]{}
	v.reserve(capacity)
	return v
}

// reserve allocates storage on first use. A vector embedded in a record is
// usable from its zero value once its codec has been requested.
func (v *Vec[T]) reserve(capacity int) {
	if capacity <= 0 {
		panic(fmt.Sprintf("fixvec: capacity must be positive, got %d", capacity))
	}
	switch len(v.items) {
	case 0:
		v.items = make([]T, capacity)
	case capacity:
	default:
		panic(fmt.Sprintf("fixvec: capacity %d redeclared as %d", len(v.items), capacity))
	}
}

// Len returns the number of live elements.
func (v *Vec[T]) Len() int {
	return int(v.n)
}

// Cap returns the fixed capacity.
func (v *Vec[T]) Cap() int {
	return len(v.items)
}

// Get returns element i, or false when i is not below Len.
func (v *Vec[T]) Get(i int) (T, bool) {
	if i < 0 || i >= v.Len() {
		var zero T
		return zero, false
	}
	return v.items[i], true
}

// Set replaces element i, which must be below Len.
func (v *Vec[T]) Set(i int, x T) {
	if i < 0 || i >= v.Len() {
		panic(fmt.Sprintf("fixvec: index %d out of range [0, %d)", i, v.Len()))
	}
	v.items[i] = x
}

// TryPush appends x. A full vector is left unchanged.
func (v *Vec[T]) TryPush(x T) error {
	if v.Len() == v.Cap() {
		return &CapacityError{Op: "push", Len: v.Len(), Cap: v.Cap()}
	}
	v.items[v.n] = x
	v.n++
	return nil
}

// TryPop removes and returns the last element. Its storage is not cleared.
func (v *Vec[T]) TryPop() (T, error) {
	if v.n == 0 {
		var zero T
		return zero, &CapacityError{Op: "pop", Cap: v.Cap()}
	}
	v.n--
	return v.items[v.n], nil
}

// Clear sets the length to zero without touching storage.
func (v *Vec[T]) Clear() {
	v.n = 0
}

// All returns a copy of the live elements.
func (v *Vec[T]) All() []T {
	return append([]T(nil), v.items[:v.n]...)
}

// Value returns the codec: a uint32 length followed by capacity elements.
// A stored length above capacity is a format error.
func (v *Vec[T]) Value(capacity int, elem func(*T) layout.Value) layout.Value {
	v.reserve(capacity)
	return vecValue[T]{v: v, elems: layout.Array(v.items, elem)}
}

type vecValue[T any] struct {
	v     *Vec[T]
	elems layout.Value
}

func (c vecValue[T]) Size() int {
	return 4 + c.elems.Size()
}

func (c vecValue[T]) Decode(cur *layout.Cursor) error {
	var n uint32
	if err := layout.Num(&n).Decode(cur); err != nil {
		return err
	}
	if err := c.elems.Decode(cur); err != nil {
		return err
	}
	if int(n) > c.v.Cap() {
		return fmt.Errorf("%w: stored length %d exceeds capacity %d", layout.ErrFormat, n, c.v.Cap())
	}
	c.v.n = n
	return nil
}

func (c vecValue[T]) Encode(out []byte) error {
	if err := layout.Num(&c.v.n).Encode(out); err != nil {
		return err
	}
	return c.elems.Encode(out[4:])
}
