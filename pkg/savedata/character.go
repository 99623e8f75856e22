package savedata

import (
	"bytes"
	"fmt"

	"github.com/ssargent/savekit/pkg/bitflags"
	"github.com/ssargent/savekit/pkg/chrono"
	"github.com/ssargent/savekit/pkg/layout"
	"github.com/ssargent/savekit/pkg/slot"
)

const (
	CharacterSize         = 4444
	NameLen               = 32
	StatCount             = 8
	AbilitySlots          = 16
	SupportSlots          = 8
	ClassCount            = 64 // per game: base and expansion each
	MasteryWords          = 16 // 2-bit mastery per ability, 256 abilities
	FirstClassID          = 1
	FirstExpansionClassID = FirstClassID + ClassCount
)

// Stat indexes into Character.Stats.
const (
	StatStrength = iota
	StatMagic
	StatVitality
	StatSpirit
	StatSpeed
	StatLuck
	StatAccuracy
	StatEvasion
)

// Character is one party member record.
type Character struct {
	ID          uint16
	ClassID     uint16
	Level       uint8
	Exp         uint32
	HP          uint32
	MP          uint32
	Stats       [StatCount]uint16
	Name        [NameLen]byte
	Weapon      slot.Slot[uint16]
	Offhand     slot.Slot[uint16]
	Head        slot.Slot[uint16]
	Body        slot.Slot[uint16]
	Accessories [2]slot.Accessory
	Abilities   [AbilitySlots]slot.Slot[uint16]
	Support     [SupportSlots]slot.Slot[uint8]
	ClassLevels [ClassCount]uint8
	ClassUnlock ClassUnlock
	Mastery     [MasteryWords]uint32
}

// Layout places the character fields in its fixed-size record.
func (c *Character) Layout() layout.Spec {
	return layout.Spec{Name: "Character", Size: CharacterSize, Fields: []layout.Field{
		layout.F("ID", layout.Num(&c.ID)),
		layout.F("ClassID", layout.Num(&c.ClassID)),
		layout.F("Level", layout.Num(&c.Level)),
		layout.F("Exp", layout.Num(&c.Exp)).At(0x08),
		layout.F("HP", layout.Num(&c.HP)),
		layout.F("MP", layout.Num(&c.MP)),
		layout.F("Stats", layout.Nums(c.Stats[:])),
		layout.F("Name", layout.Bytes(c.Name[:])),
		layout.F("Weapon", c.Weapon.Value()),
		layout.F("Offhand", c.Offhand.Value()),
		layout.F("Head", c.Head.Value()),
		layout.F("Body", c.Body.Value()),
		layout.F("Accessories", layout.Structs(c.Accessories[:])),
		layout.F("Abilities", slot.Values(c.Abilities[:])).At(0x60),
		layout.F("Support", slot.Values(c.Support[:])),
		layout.F("ClassLevels", layout.Nums(c.ClassLevels[:])).At(0x90),
		layout.F("ClassUnlock", layout.Sub(&c.ClassUnlock)).At(0x100),
		layout.F("Mastery", layout.Nums(c.Mastery[:])).At(0x280),
	}}
}

// DisplayName returns the name up to its first NUL byte.
func (c *Character) DisplayName() string {
	name := c.Name[:]
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}
	return string(name)
}

// SetName stores name NUL-padded to the field width.
func (c *Character) SetName(name string) error {
	if len(name) > NameLen {
		return fmt.Errorf("name %q is longer than %d bytes", name, NameLen)
	}
	var buf [NameLen]byte
	copy(buf[:], name)
	c.Name = buf
	return nil
}

// MasteryTable returns the 2-bit ability mastery flags.
func (c *Character) MasteryTable() *bitflags.Table {
	return bitflags.Over(2, c.Mastery[:])
}

// ClassOrder returns the class unlock order of this character.
func (c *Character) ClassOrder() chrono.Order {
	return c.ClassUnlock.Order()
}

// ClassUnlock records when each class was unlocked. Base-game classes use
// IDs 1..64 and expansion classes 65..128.
type ClassUnlock struct {
	Base      [ClassCount]uint16
	Expansion [ClassCount]uint16
	Counter   uint16
}

// Layout declares both key arrays followed by the shared counter.
func (u *ClassUnlock) Layout() layout.Spec {
	return layout.Spec{Name: "ClassUnlock", Size: 0x110, Fields: []layout.Field{
		layout.F("Base", layout.Nums(u.Base[:])),
		layout.F("Expansion", layout.Nums(u.Expansion[:])),
		layout.F("Counter", layout.Num(&u.Counter)),
	}}
}

// Order addresses the two key arrays as one table of class IDs. The game
// keeps base-game class keys in the array stored second (Expansion here) and
// expansion keys in the first; this matches what real saves contain.
func (u *ClassUnlock) Order() chrono.Order {
	return chrono.NewSegmented(&u.Counter, FirstClassID, u.Expansion[:], u.Base[:])
}
