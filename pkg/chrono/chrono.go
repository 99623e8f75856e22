// Package chrono tracks the order in which game entities were unlocked.
//
// Every entity carries a key. Zero means the entity was never registered;
// otherwise a larger key is a more recent unlock. A shared counter stored in
// the save is incremented on each insert and its new value becomes the
// entity's key. The counter wraps on overflow exactly as the game's does,
// so an insert that wraps to zero leaves its entity looking unregistered.
//
// Three backings share this behaviour: Table (a dense key array), Slots
// (a key field inside each element of a record array) and Flags (keys packed
// into a bitflags.Table).
package chrono

import (
	"fmt"
	"slices"
)

// Key is the width of an order key.
type Key interface {
	~uint16 | ~uint32
}

// Order is the behaviour shared by every backing.
type Order interface {
	// Range returns the valid IDs as the half-open interval [first, end).
	Range() (first, end int)
	// Key returns the raw key of id widened to 32 bits.
	Key(id int) uint32
	// Compare orders a before b when a was unlocked more recently.
	// Unregistered entries sort after all registered ones.
	Compare(a, b int) int
	// Swap exchanges the keys of a and b.
	Swap(a, b int)
	// Insert registers id as the most recent unlock.
	Insert(id int)
}

type store[K Key] interface {
	size() int
	get(i int) K
	set(i int, k K)
}

type tracker[K Key] struct {
	keys    store[K]
	counter *K
	first   int
}

func (t *tracker[K]) index(id int) int {
	i := id - t.first
	if i < 0 || i >= t.keys.size() {
		panic(fmt.Sprintf("chrono: id %d out of range [%d, %d)", id, t.first, t.first+t.keys.size()))
	}
	return i
}

func (t *tracker[K]) Range() (int, int) {
	return t.first, t.first + t.keys.size()
}

func (t *tracker[K]) Key(id int) uint32 {
	return uint32(t.keys.get(t.index(id)))
}

func (t *tracker[K]) Compare(a, b int) int {
	return compareKeys(t.keys.get(t.index(a)), t.keys.get(t.index(b)))
}

func (t *tracker[K]) Swap(a, b int) {
	ia, ib := t.index(a), t.index(b)
	ka, kb := t.keys.get(ia), t.keys.get(ib)
	t.keys.set(ia, kb)
	t.keys.set(ib, ka)
}

func (t *tracker[K]) Insert(id int) {
	i := t.index(id)
	*t.counter++
	t.keys.set(i, *t.counter)
}

// Counter returns the current value of the shared counter.
func (t *tracker[K]) Counter() K {
	return *t.counter
}

func compareKeys[K Key](a, b K) int {
	switch {
	case a == b:
		return 0
	case a == 0:
		return 1
	case b == 0:
		return -1
	case a > b:
		return -1
	default:
		return 1
	}
}

// Sort orders ids most recent first, unregistered last. Equal keys keep
// their relative order.
func Sort(o Order, ids []int) {
	slices.SortStableFunc(ids, o.Compare)
}

// Ranked returns every registered ID, most recent first.
func Ranked(o Order) []int {
	first, end := o.Range()
	var ids []int
	for id := first; id < end; id++ {
		if o.Key(id) != 0 {
			ids = append(ids, id)
		}
	}
	Sort(o, ids)
	return ids
}
