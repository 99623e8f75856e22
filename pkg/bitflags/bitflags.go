// Package bitflags packs fixed-width flags into arrays of 32-bit words.
//
// A table of width B stores flag i in bits [(i*B)%32, (i*B)%32+B) of word
// i*B/32. B is one of 1, 2, 4, 8, 16 or 32, so a flag never straddles two
// words.
package bitflags

import (
	"fmt"

	"github.com/ssargent/savekit/pkg/layout"
)

const bitsPerWord = 32

// Table is a view over a word array holding flags of one width.
type Table struct {
	bits  uint
	mask  uint32
	words []uint32
}

// New allocates a zeroed table of the given width and word count.
func New(bits, words int) *Table {
	return Over(bits, make([]uint32, words))
}

// Over returns a table backed by words, which is usually an array inside a
// decoded record. Set writes through to it.
func Over(bits int, words []uint32) *Table {
	switch bits {
	case 1, 2, 4, 8, 16, 32:
	default:
		panic(fmt.Sprintf("bitflags: unsupported flag width %d", bits))
	}
	mask := uint32(1)<<uint(bits) - 1
	if bits == bitsPerWord {
		mask = ^uint32(0)
	}
	return &Table{bits: uint(bits), mask: mask, words: words}
}

// Bits returns the flag width.
func (t *Table) Bits() int {
	return int(t.bits)
}

// Len returns the number of flags in the table.
func (t *Table) Len() int {
	return len(t.words) * bitsPerWord / int(t.bits)
}

// Words returns the backing word array.
func (t *Table) Words() []uint32 {
	return t.words
}

func (t *Table) locate(index int) (word int, shift uint) {
	bit := uint(index) * t.bits
	return int(bit / bitsPerWord), bit % bitsPerWord
}

// Get returns flag index, or false when index is outside the table.
func (t *Table) Get(index int) (uint32, bool) {
	if index < 0 || index >= t.Len() {
		return 0, false
	}
	w, shift := t.locate(index)
	return (t.words[w] >> shift) & t.mask, true
}

// Set stores v in flag index. An index outside the table or a value wider
// than the flag width panics.
func (t *Table) Set(index int, v uint32) {
	if index < 0 || index >= t.Len() {
		panic(fmt.Sprintf("bitflags: index %d out of range [0, %d)", index, t.Len()))
	}
	if v&^t.mask != 0 {
		panic(fmt.Sprintf("bitflags: value %#x does not fit in %d bits", v, t.bits))
	}
	w, shift := t.locate(index)
	t.words[w] = t.words[w]&^(t.mask<<shift) | v<<shift
}

// IsSet reports whether flag index is non-zero.
func (t *Table) IsSet(index int) bool {
	v, ok := t.Get(index)
	return ok && v != 0
}

// Count returns the number of non-zero flags.
func (t *Table) Count() int {
	n := 0
	t.Each(func(int, uint32) { n++ })
	return n
}

// Each calls fn for every non-zero flag in index order.
func (t *Table) Each(fn func(index int, v uint32)) {
	per := bitsPerWord / int(t.bits)
	for w, word := range t.words {
		if word == 0 {
			continue
		}
		for j := 0; j < per; j++ {
			if v := (word >> (uint(j) * t.bits)) & t.mask; v != 0 {
				fn(w*per+j, v)
			}
		}
	}
}

// Value returns the codec for the backing words.
func (t *Table) Value() layout.Value {
	return layout.Nums(t.words)
}
