package savedata

import (
	"github.com/ssargent/savekit/pkg/fixvec"
	"github.com/ssargent/savekit/pkg/layout"
	"github.com/ssargent/savekit/pkg/slot"
)

const (
	PartySize     = 9360
	RosterCap     = 8
	ReserveCap    = 32
	PresetCount   = 16
	PresetSize    = 0x200
	PresetMembers = 4

	// Offsets of the length prefixes inside Party.
	RosterOffset  = 0x0000
	ReserveOffset = 0x2100
)

// Party is the party formation record: the active roster, the reserve
// bench and the saved formation presets.
type Party struct {
	Roster    fixvec.Vec[uint16]
	Leader    slot.Slot[uint8]
	Formation uint8
	Presets   [PresetCount]Preset
	Reserve   fixvec.Vec[uint16]
}

// Layout declares the party block.
func (p *Party) Layout() layout.Spec {
	return layout.Spec{Name: "Party", Size: PartySize, Fields: []layout.Field{
		layout.F("Roster", p.Roster.Value(RosterCap, layout.Num[uint16])).At(RosterOffset),
		layout.F("Leader", p.Leader.Value()),
		layout.F("Formation", layout.Num(&p.Formation)),
		layout.F("Presets", layout.Structs(p.Presets[:])).At(0x20),
		layout.F("Reserve", p.Reserve.Value(ReserveCap, layout.Num[uint16])).At(ReserveOffset),
	}}
}

// Preset is a saved formation.
type Preset struct {
	Name    [24]byte
	Members [PresetMembers]slot.Slot[uint16]
	Tactics [8]uint8
}

// Layout declares one formation preset.
func (p *Preset) Layout() layout.Spec {
	return layout.Spec{Name: "Preset", Size: PresetSize, Fields: []layout.Field{
		layout.F("Name", layout.Bytes(p.Name[:])),
		layout.F("Members", slot.Values(p.Members[:])),
		layout.F("Tactics", layout.Nums(p.Tactics[:])),
	}}
}
