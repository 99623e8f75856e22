// Package slot models fields that hold either an assigned ID or "nothing".
//
// The save format has no separate presence flags: an equipment or ability
// field holding the maximum value of its width is empty, anything else is
// an assignment. Composite slot families define emptiness their own way;
// see Accessory.
package slot

import (
	"fmt"

	"github.com/ssargent/savekit/pkg/layout"
)

// Reader is the read side shared by every slot family.
type Reader[V any] interface {
	IsEmpty() bool
	Get() (V, bool)
}

// Mutator adds assignment to Reader.
type Mutator[V any] interface {
	Reader[V]
	Set(v V)
	Put(v V, ok bool)
	SetEmpty()
}

// Unsigned is the set of raw widths a numeric slot may have.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32
}

// Slot is a numeric field whose all-ones value means empty.
type Slot[N Unsigned] struct {
	Raw N
}

// Empty returns an empty slot.
func Empty[N Unsigned]() Slot[N] {
	return Slot[N]{Raw: Sentinel[N]()}
}

// Of returns a slot assigned v.
func Of[N Unsigned](v N) Slot[N] {
	var s Slot[N]
	s.Set(v)
	return s
}

// Sentinel returns the empty marker for width N.
func Sentinel[N Unsigned]() N {
	return ^N(0)
}

// IsEmpty reports whether the slot holds the sentinel.
func (s Slot[N]) IsEmpty() bool {
	return s.Raw == Sentinel[N]()
}

// Get returns the assigned value, or false when empty.
func (s Slot[N]) Get() (N, bool) {
	if s.IsEmpty() {
		return 0, false
	}
	return s.Raw, true
}

// Set assigns v. The sentinel is never an assignable value.
func (s *Slot[N]) Set(v N) {
	if v == Sentinel[N]() {
		panic(fmt.Sprintf("slot: %#x is the empty sentinel", v))
	}
	s.Raw = v
}

// Put assigns v when ok, otherwise empties the slot.
func (s *Slot[N]) Put(v N, ok bool) {
	if !ok {
		s.SetEmpty()
		return
	}
	s.Set(v)
}

// SetEmpty writes the sentinel.
func (s *Slot[N]) SetEmpty() {
	s.Raw = Sentinel[N]()
}

// Value returns the codec for the raw field.
func (s *Slot[N]) Value() layout.Value {
	return layout.Num(&s.Raw)
}

func (s Slot[N]) String() string {
	if v, ok := s.Get(); ok {
		return fmt.Sprint(v)
	}
	return "-"
}

// Values binds an array of slots.
func Values[N Unsigned](slots []Slot[N]) layout.Value {
	return layout.Array(slots, func(s *Slot[N]) layout.Value { return s.Value() })
}
