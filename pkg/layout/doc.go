// Package layout implements the byte-layout runtime used to decode and
// re-encode fixed-layout binary records.
//
// # Declaring a record
//
// A record is any type implementing Struct. Its Layout method returns a Spec:
// an ordered list of fields, each bound to a pointer into the record and
// placed at an explicit byte offset (or directly after the previous field).
//
//	func (h *Header) Layout() layout.Spec {
//	    return layout.Spec{Name: "Header", Size: 0x40, Fields: []layout.Field{
//	        layout.F("Magic", layout.Num(&h.Magic)).Expect(0x45564153),
//	        layout.F("Version", layout.Num(&h.Version)),
//	        layout.F("Gold", layout.Num(&h.Gold)).At(0x10),
//	    }}
//	}
//
// The declared Size may exceed the span of the fields. Bytes between fields
// and the tail after the last one are padding.
//
// # Read everything, write only known spans
//
// Decode walks the fields in order, skipping padding, and then checks field
// assertions. Encode serializes each field into its span of the destination
// slice and never touches any other byte. Encoding into a copy of the buffer
// that was decoded therefore reproduces the original bytes exactly, including
// every region the declaration does not model.
//
// All integers are little-endian.
//
// # Errors
//
// A read past the end of the buffer returns a *BoundsError (errors.Is
// ErrBounds). A failed assertion returns an *AssertionError (errors.Is
// ErrFormat) that unwraps to the caller's custom error when one was
// supplied. Mistakes in a declaration itself, such as overlapping fields or
// a declared size smaller than the field span, panic.
package layout
