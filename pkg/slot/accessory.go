package slot

import "github.com/ssargent/savekit/pkg/layout"

// Accessory is an equipped accessory record. It is empty when either its
// ID or its level is zero; the rest of the record is kept as found.
type Accessory struct {
	ID    uint16
	Level uint8
	Grade uint8
}

// AccessoryValue is the content of an assigned accessory slot.
type AccessoryValue struct {
	ID    uint16
	Level uint8
	Grade uint8
}

// IsEmpty reports whether a required sub-field is zero.
func (a Accessory) IsEmpty() bool {
	return a.ID == 0 || a.Level == 0
}

// Get returns the accessory, or false when the slot is empty.
func (a Accessory) Get() (AccessoryValue, bool) {
	if a.IsEmpty() {
		return AccessoryValue{}, false
	}
	return AccessoryValue{ID: a.ID, Level: a.Level, Grade: a.Grade}, true
}

// Set equips v. Both ID and level must be non-zero.
func (a *Accessory) Set(v AccessoryValue) {
	if v.ID == 0 || v.Level == 0 {
		panic("slot: accessory needs a non-zero ID and level")
	}
	a.ID, a.Level, a.Grade = v.ID, v.Level, v.Grade
}

// Put equips v when ok, otherwise empties the slot.
func (a *Accessory) Put(v AccessoryValue, ok bool) {
	if !ok {
		a.SetEmpty()
		return
	}
	a.Set(v)
}

// SetEmpty clears the required fields. Grade is left as it was, which is
// what the game itself does when unequipping.
func (a *Accessory) SetEmpty() {
	a.ID = 0
	a.Level = 0
}

func (a *Accessory) Layout() layout.Spec {
	return layout.Spec{Name: "Accessory", Size: 4, Fields: []layout.Field{
		layout.F("ID", layout.Num(&a.ID)),
		layout.F("Level", layout.Num(&a.Level)),
		layout.F("Grade", layout.Num(&a.Grade)),
	}}
}

var (
	_ Mutator[uint16]         = (*Slot[uint16])(nil)
	_ Mutator[AccessoryValue] = (*Accessory)(nil)
)
