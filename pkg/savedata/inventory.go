package savedata

import (
	"github.com/ssargent/savekit/pkg/chrono"
	"github.com/ssargent/savekit/pkg/layout"
	"github.com/ssargent/savekit/pkg/slot"
)

const (
	InventorySize = 0x1100
	InventoryCap  = 512
)

// Inventory holds the item bag. Each slot carries the stamp of when the
// item was first picked up, which the game uses for its "recent" sort.
type Inventory struct {
	Counter uint32
	Items   []Item
}

// Layout declares the counter and the slot array at 0x10.
func (inv *Inventory) Layout() layout.Spec {
	return layout.Spec{Name: "Inventory", Size: InventorySize, Fields: []layout.Field{
		layout.F("Counter", layout.Num(&inv.Counter)),
		layout.F("Items", layout.Boxed(&inv.Items, InventoryCap, func(it *Item) layout.Value {
			return layout.Sub(it)
		})).At(0x10),
	}}
}

// Order returns the acquisition order of the inventory slots.
func (inv *Inventory) Order() chrono.Order {
	return chrono.NewSlots(inv.Items, func(it *Item) *uint32 { return &it.Stamp }, &inv.Counter)
}

// Occupied reports whether slot i holds an item. The game leaves the stamp
// of an emptied slot in place, so Order still counts such slots.
func (inv *Inventory) Occupied(i int) bool {
	return !inv.Items[i].ID.IsEmpty()
}

// Find returns the index of the slot holding id.
func (inv *Inventory) Find(id uint16) (int, bool) {
	for i := range inv.Items {
		if v, ok := inv.Items[i].ID.Get(); ok && v == id {
			return i, true
		}
	}
	return 0, false
}

// Item is one inventory slot.
type Item struct {
	ID    slot.Slot[uint16]
	Count uint16
	Stamp uint32
}

// Layout declares one 8-byte slot.
func (it *Item) Layout() layout.Spec {
	return layout.Spec{Name: "Item", Fields: []layout.Field{
		layout.F("ID", it.ID.Value()),
		layout.F("Count", layout.Num(&it.Count)),
		layout.F("Stamp", layout.Num(&it.Stamp)),
	}}
}
