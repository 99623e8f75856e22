package layout

import "fmt"

type arrayValue[E any] struct {
	elems    []E
	fn       func(*E) Value
	elemSize int
}

// Array binds a fixed array, usually passed as arr[:]. fn adapts one
// element into a Value; its size times len(elems) is the array's size.
func Array[E any](elems []E, fn func(*E) Value) Value {
	var zero E
	return arrayValue[E]{elems: elems, fn: fn, elemSize: fn(&zero).Size()}
}

// Nums binds a fixed array of integers.
func Nums[T Integer](elems []T) Value {
	return Array(elems, Num[T])
}

// Structs binds a fixed array of records.
func Structs[E any, P interface {
	*E
	Struct
}](elems []E) Value {
	return Array(elems, func(e *E) Value { return Sub(P(e)) })
}

func (v arrayValue[E]) Size() int {
	return v.elemSize * len(v.elems)
}

func (v arrayValue[E]) Decode(c *Cursor) error {
	start := c.Pos()
	for i := range v.elems {
		c.Seek(start + i*v.elemSize)
		if err := v.fn(&v.elems[i]).Decode(c); err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}
	}
	c.Seek(start + v.Size())
	return nil
}

func (v arrayValue[E]) Encode(out []byte) error {
	if len(out) < v.Size() {
		return &BoundsError{Need: v.Size(), Have: len(out)}
	}
	for i := range v.elems {
		at := i * v.elemSize
		if err := v.fn(&v.elems[i]).Encode(out[at : at+v.elemSize]); err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}
	}
	return nil
}

func (v arrayValue[E]) count() int { return len(v.elems) }

type boxedValue[E any] struct {
	p  *[]E
	n  int
	fn func(*E) Value
}

// Boxed binds a heap-allocated array of exactly n elements held in *p.
// Decode allocates *p when it does not already hold n elements. Apart from
// where the storage lives it behaves like Array.
func Boxed[E any](p *[]E, n int, fn func(*E) Value) Value {
	return boxedValue[E]{p: p, n: n, fn: fn}
}

func (v boxedValue[E]) Size() int {
	var zero E
	return v.fn(&zero).Size() * v.n
}

func (v boxedValue[E]) Decode(c *Cursor) error {
	if len(*v.p) != v.n {
		*v.p = make([]E, v.n)
	}
	return Array(*v.p, v.fn).Decode(c)
}

func (v boxedValue[E]) Encode(out []byte) error {
	if len(*v.p) != v.n {
		return fmt.Errorf("%w: boxed array holds %d of %d elements", ErrFormat, len(*v.p), v.n)
	}
	return Array(*v.p, v.fn).Encode(out)
}

func (v boxedValue[E]) count() int { return v.n }
