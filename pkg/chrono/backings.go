package chrono

import (
	"fmt"
	"unsafe"

	"github.com/ssargent/savekit/pkg/bitflags"
)

type sliceStore[K Key] []K

func (s sliceStore[K]) size() int      { return len(s) }
func (s sliceStore[K]) get(i int) K    { return s[i] }
func (s sliceStore[K]) set(i int, k K) { s[i] = k }

// Table keeps one key per entity in a dense array indexed by id - first.
type Table[K Key] struct {
	tracker[K]
}

// NewTable tracks keys[i] as the key of entity first+i. IDs below first,
// such as a zero class ID, are rejected.
func NewTable[K Key](keys []K, counter *K, first int) *Table[K] {
	return &Table[K]{tracker[K]{keys: sliceStore[K](keys), counter: counter, first: first}}
}

type segmentStore[K Key] [][]K

func (s segmentStore[K]) size() int {
	n := 0
	for _, seg := range s {
		n += len(seg)
	}
	return n
}

func (s segmentStore[K]) locate(i int) ([]K, int) {
	for _, seg := range s {
		if i < len(seg) {
			return seg, i
		}
		i -= len(seg)
	}
	panic(fmt.Sprintf("chrono: segment index %d out of range", i))
}

func (s segmentStore[K]) get(i int) K {
	seg, j := s.locate(i)
	return seg[j]
}

func (s segmentStore[K]) set(i int, k K) {
	seg, j := s.locate(i)
	seg[j] = k
}

// NewSegmented tracks a key table split over several arrays, addressed as
// if they were one array starting at first.
func NewSegmented[K Key](counter *K, first int, segments ...[]K) *Table[K] {
	return &Table[K]{tracker[K]{keys: segmentStore[K](segments), counter: counter, first: first}}
}

type fieldStore[E any, K Key] struct {
	elems []E
	key   func(*E) *K
}

func (s fieldStore[E, K]) size() int      { return len(s.elems) }
func (s fieldStore[E, K]) get(i int) K    { return *s.key(&s.elems[i]) }
func (s fieldStore[E, K]) set(i int, k K) { *s.key(&s.elems[i]) = k }

// Slots reads keys from a field that already exists in each element of a
// record array, such as the order stamp of an inventory slot. IDs are
// element indexes.
type Slots[E any, K Key] struct {
	tracker[K]
}

// NewSlots tracks *key(&elems[i]) as the key of slot i.
func NewSlots[E any, K Key](elems []E, key func(*E) *K, counter *K) *Slots[E, K] {
	return &Slots[E, K]{tracker[K]{keys: fieldStore[E, K]{elems: elems, key: key}, counter: counter}}
}

type flagStore[K Key] struct {
	t *bitflags.Table
}

func (s flagStore[K]) size() int { return s.t.Len() }

func (s flagStore[K]) get(i int) K {
	v, _ := s.t.Get(i)
	return K(v)
}

func (s flagStore[K]) set(i int, k K) { s.t.Set(i, uint32(k)) }

// Flags keeps keys in a flag table whose width matches K.
type Flags[K Key] struct {
	tracker[K]
}

// NewFlags tracks flag i of t as the key of entity first+i.
func NewFlags[K Key](t *bitflags.Table, counter *K, first int) *Flags[K] {
	var zero K
	if want := int(unsafe.Sizeof(zero)) * 8; t.Bits() != want {
		panic(fmt.Sprintf("chrono: %d-bit flags cannot hold %d-bit keys", t.Bits(), want))
	}
	return &Flags[K]{tracker[K]{keys: flagStore[K]{t: t}, counter: counter, first: first}}
}

var (
	_ Order = (*Table[uint16])(nil)
	_ Order = (*Slots[struct{ k uint32 }, uint32])(nil)
	_ Order = (*Flags[uint16])(nil)
)
