package layout

import "fmt"

// Next places a field directly after the previous one.
const Next = -1

// Struct is a record described by an ordered field list.
type Struct interface {
	Layout() Spec
}

// Spec is the declaration of a record.
type Spec struct {
	Name   string
	Size   int // declared total size; 0 means the span of the fields
	Fields []Field
}

// Field places a Value inside a record.
type Field struct {
	Name     string
	Offset   int // relative to the record start, or Next
	Size     int // span in bytes; 0 means the natural width of Value
	Value    Value
	Assert   *Assertion
	Internal bool // excluded from Describe
}

// Assertion is the exact value a field must decode to.
type Assertion struct {
	Want uint64
	Fn   func(actual uint64) error
}

// F declares a field placed directly after the previous one.
func F(name string, v Value) Field {
	return Field{Name: name, Offset: Next, Value: v}
}

// At places the field at an explicit offset. The gap to the previous field
// is padding.
func (f Field) At(off int) Field {
	f.Offset = off
	return f
}

// Span reserves n bytes for the field. Bytes past the value's natural width
// are padding.
func (f Field) Span(n int) Field {
	f.Size = n
	return f
}

// Expect requires the field to decode to want.
func (f Field) Expect(want uint64) Field {
	f.Assert = &Assertion{Want: want}
	return f
}

// ExpectFunc requires the field to decode to want and reports a mismatch
// with the error fn builds from the actual value.
func (f Field) ExpectFunc(want uint64, fn func(actual uint64) error) Field {
	f.Assert = &Assertion{Want: want, Fn: fn}
	return f
}

// Hidden marks the field internal: it is decoded and encoded as usual but
// not listed by Describe.
func (f Field) Hidden() Field {
	f.Internal = true
	return f
}

type placed struct {
	field *Field
	off   int
	size  int
}

// place resolves field offsets and the total record size. Declaration
// mistakes panic.
func (s *Spec) place() ([]placed, int) {
	out := make([]placed, len(s.Fields))
	running := 0
	for i := range s.Fields {
		f := &s.Fields[i]
		off := f.Offset
		if off == Next {
			off = running
		}
		if off < running {
			panic(fmt.Sprintf("layout: %s.%s at %#x overlaps previous field ending at %#x", s.Name, f.Name, off, running))
		}
		natural := f.Value.Size()
		size := f.Size
		if size == 0 {
			size = natural
		}
		if size < natural {
			panic(fmt.Sprintf("layout: %s.%s span %d is smaller than its value (%d)", s.Name, f.Name, size, natural))
		}
		if f.Assert != nil {
			if _, ok := f.Value.(rawValue); !ok {
				panic(fmt.Sprintf("layout: %s.%s: assertions need an integer field", s.Name, f.Name))
			}
		}
		out[i] = placed{field: f, off: off, size: size}
		running = off + size
	}
	total := s.Size
	if total == 0 {
		total = running
	}
	if total < running {
		panic(fmt.Sprintf("layout: %s declares %d bytes but its fields span %d", s.Name, total, running))
	}
	return out, total
}

// SizeOf returns the declared total size of s.
func SizeOf(s Struct) int {
	spec := s.Layout()
	_, total := spec.place()
	return total
}

// Decode reads s from the cursor, which must be positioned at the start of
// the record. On success the cursor ends at the record's declared end.
// A bounds error aborts the decode; assertion failures are reported after
// every field has been read.
func Decode(c *Cursor, s Struct) error {
	spec := s.Layout()
	fields, total := spec.place()
	base := c.Pos()

	for _, p := range fields {
		c.Seek(base + p.off)
		if err := p.field.Value.Decode(c); err != nil {
			return fmt.Errorf("%s.%s: %w", spec.Name, p.field.Name, err)
		}
	}

	end := base + total
	c.Seek(end)
	if end > c.Len() {
		return &BoundsError{Offset: base, Need: total, Have: c.Len()}
	}

	for _, p := range fields {
		a := p.field.Assert
		if a == nil {
			continue
		}
		actual := p.field.Value.(rawValue).raw()
		if actual == a.Want {
			continue
		}
		e := &AssertionError{
			Struct:   spec.Name,
			Field:    p.field.Name,
			Offset:   base + p.off,
			Expected: a.Want,
			Actual:   actual,
		}
		if a.Fn != nil {
			e.Err = a.Fn(actual)
		}
		return e
	}
	return nil
}

// Encode writes every field of s into its span of out, which must hold at
// least the declared size. Padding and gaps are left as they are.
func Encode(out []byte, s Struct) error {
	spec := s.Layout()
	fields, total := spec.place()
	if len(out) < total {
		return &BoundsError{Need: total, Have: len(out)}
	}
	for _, p := range fields {
		if err := p.field.Value.Encode(out[p.off : p.off+p.size]); err != nil {
			return fmt.Errorf("%s.%s: %w", spec.Name, p.field.Name, err)
		}
	}
	return nil
}

// Read decodes s from the start of buf.
func Read(buf []byte, s Struct) error {
	return Decode(NewCursor(buf), s)
}

type structValue struct {
	s Struct
}

// Sub adapts a nested record into a Value.
func Sub(s Struct) Value {
	return structValue{s: s}
}

func (v structValue) Size() int               { return SizeOf(v.s) }
func (v structValue) Decode(c *Cursor) error  { return Decode(c, v.s) }
func (v structValue) Encode(out []byte) error { return Encode(out, v.s) }
