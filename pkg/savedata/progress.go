package savedata

import (
	"github.com/ssargent/savekit/pkg/bitflags"
	"github.com/ssargent/savekit/pkg/chrono"
	"github.com/ssargent/savekit/pkg/layout"
)

const (
	ProgressSize = 0x800

	EventWords    = 128 // 1 bit, 4096 events
	QuestWords    = 32  // 4 bits, 256 quests
	TreasureWords = 32  // 8 bits, 128 chests
	BestiaryWords = 64  // 16 bits, 128 monsters
	AffinityWords = 16  // 32 bits, 16 companions
)

// Progress holds the story flag tables. The tables sit back to back; each
// has its own flag width.
type Progress struct {
	Events          [EventWords]uint32
	Quests          [QuestWords]uint32
	Treasures       [TreasureWords]uint32
	Bestiary        [BestiaryWords]uint32
	BestiaryCounter uint16
	Affinity        [AffinityWords]uint32
}

// Layout declares the flag tables in file order.
func (p *Progress) Layout() layout.Spec {
	return layout.Spec{Name: "Progress", Size: ProgressSize, Fields: []layout.Field{
		layout.F("Events", layout.Nums(p.Events[:])),
		layout.F("Quests", layout.Nums(p.Quests[:])),
		layout.F("Treasures", layout.Nums(p.Treasures[:])),
		layout.F("Bestiary", layout.Nums(p.Bestiary[:])),
		layout.F("BestiaryCounter", layout.Num(&p.BestiaryCounter)),
		layout.F("Affinity", layout.Nums(p.Affinity[:])).At(0x410),
	}}
}

// EventFlags returns the 1-bit story event flags.
func (p *Progress) EventFlags() *bitflags.Table { return bitflags.Over(1, p.Events[:]) }

// QuestFlags returns the 4-bit quest stages.
func (p *Progress) QuestFlags() *bitflags.Table { return bitflags.Over(4, p.Quests[:]) }

// TreasureFlags returns the 8-bit chest states.
func (p *Progress) TreasureFlags() *bitflags.Table { return bitflags.Over(8, p.Treasures[:]) }

// BestiaryFlags returns the 16-bit bestiary stamps.
func (p *Progress) BestiaryFlags() *bitflags.Table { return bitflags.Over(16, p.Bestiary[:]) }

// AffinityFlags returns the 32-bit companion affinity values.
func (p *Progress) AffinityFlags() *bitflags.Table { return bitflags.Over(32, p.Affinity[:]) }

// BestiaryOrder returns the order monsters were first recorded in, keyed by
// 16-bit stamps packed into the bestiary flags.
func (p *Progress) BestiaryOrder() chrono.Order {
	return chrono.NewFlags(p.BestiaryFlags(), &p.BestiaryCounter, 0)
}
