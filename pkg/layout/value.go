package layout

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// Value is a fixed-size binary value bound to a location in a record.
type Value interface {
	// Size returns the encoded width in bytes. It is fixed per type.
	Size() int
	// Decode reads the value at the cursor and advances it by Size.
	Decode(c *Cursor) error
	// Encode writes the value into out[:Size()] and nothing else.
	Encode(out []byte) error
}

// Integer is the set of integer types a field may hold.
type Integer interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~int8 | ~int16 | ~int32 | ~int64
}

// rawValue is implemented by values that can be checked by an assertion.
type rawValue interface {
	raw() uint64
}

type numValue[T Integer] struct {
	p *T
}

// Num binds an integer field.
func Num[T Integer](p *T) Value {
	return numValue[T]{p: p}
}

func (v numValue[T]) Size() int {
	return int(unsafe.Sizeof(*v.p))
}

func (v numValue[T]) Decode(c *Cursor) error {
	b, err := c.Take(v.Size())
	if err != nil {
		return err
	}
	*v.p = T(getLE(b))
	return nil
}

func (v numValue[T]) Encode(out []byte) error {
	n := v.Size()
	if len(out) < n {
		return &BoundsError{Need: n, Have: len(out)}
	}
	putLE(out[:n], uint64(*v.p))
	return nil
}

func (v numValue[T]) raw() uint64 {
	n := v.Size()
	u := uint64(*v.p)
	if n < 8 {
		u &= 1<<(8*uint(n)) - 1
	}
	return u
}

type float32Value struct {
	p *float32
}

// Float32 binds an IEEE-754 single precision field.
func Float32(p *float32) Value {
	return float32Value{p: p}
}

func (v float32Value) Size() int { return 4 }

func (v float32Value) Decode(c *Cursor) error {
	b, err := c.Take(4)
	if err != nil {
		return err
	}
	*v.p = math.Float32frombits(binary.LittleEndian.Uint32(b))
	return nil
}

func (v float32Value) Encode(out []byte) error {
	if len(out) < 4 {
		return &BoundsError{Need: 4, Have: len(out)}
	}
	binary.LittleEndian.PutUint32(out, math.Float32bits(*v.p))
	return nil
}

type float64Value struct {
	p *float64
}

// Float64 binds an IEEE-754 double precision field.
func Float64(p *float64) Value {
	return float64Value{p: p}
}

func (v float64Value) Size() int { return 8 }

func (v float64Value) Decode(c *Cursor) error {
	b, err := c.Take(8)
	if err != nil {
		return err
	}
	*v.p = math.Float64frombits(binary.LittleEndian.Uint64(b))
	return nil
}

func (v float64Value) Encode(out []byte) error {
	if len(out) < 8 {
		return &BoundsError{Need: 8, Have: len(out)}
	}
	binary.LittleEndian.PutUint64(out, math.Float64bits(*v.p))
	return nil
}

type bytesValue struct {
	p []byte
}

// Bytes binds a fixed-length raw byte field, typically a slice of an array
// such as name[:].
func Bytes(p []byte) Value {
	return bytesValue{p: p}
}

func (v bytesValue) Size() int { return len(v.p) }

func (v bytesValue) Decode(c *Cursor) error {
	b, err := c.Take(len(v.p))
	if err != nil {
		return err
	}
	copy(v.p, b)
	return nil
}

func (v bytesValue) Encode(out []byte) error {
	if len(out) < len(v.p) {
		return &BoundsError{Need: len(v.p), Have: len(out)}
	}
	copy(out, v.p)
	return nil
}

func getLE(b []byte) uint64 {
	switch len(b) {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(binary.LittleEndian.Uint16(b))
	case 4:
		return uint64(binary.LittleEndian.Uint32(b))
	default:
		return binary.LittleEndian.Uint64(b)
	}
}

func putLE(b []byte, u uint64) {
	switch len(b) {
	case 1:
		b[0] = byte(u)
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(u))
	case 4:
		binary.LittleEndian.PutUint32(b, uint32(u))
	default:
		binary.LittleEndian.PutUint64(b, u)
	}
}
