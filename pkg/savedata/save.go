package savedata

import "github.com/ssargent/savekit/pkg/layout"

const (
	SaveMagic   = 0x45564153 // "SAVE"
	SaveVersion = 0x00010004
	SaveSize    = 0x10000

	CharacterCount = 8

	OffsetCharacters = 0x0040
	OffsetParty      = OffsetCharacters + CharacterCount*CharacterSize
	OffsetInventory  = OffsetParty + PartySize
	OffsetProgress   = 0xC100
)

// SaveHeader opens every save file.
type SaveHeader struct {
	Magic      uint32
	Version    uint32
	SaveCount  uint32
	PlayTime   uint32 // seconds
	Gold       uint32
	Location   uint16
	Chapter    uint8
	Difficulty uint8
	Timestamp  uint64 // unix seconds
	SlotIndex  uint8
}

// Layout declares the header and checks its magic and version.
func (h *SaveHeader) Layout() layout.Spec {
	return layout.Spec{Name: "SaveHeader", Size: 0x40, Fields: []layout.Field{
		layout.F("Magic", layout.Num(&h.Magic)).Expect(SaveMagic),
		layout.F("Version", layout.Num(&h.Version)).ExpectFunc(SaveVersion, versionCheck("save", SaveVersion)),
		layout.F("SaveCount", layout.Num(&h.SaveCount)),
		layout.F("PlayTime", layout.Num(&h.PlayTime)),
		layout.F("Gold", layout.Num(&h.Gold)),
		layout.F("Location", layout.Num(&h.Location)),
		layout.F("Chapter", layout.Num(&h.Chapter)),
		layout.F("Difficulty", layout.Num(&h.Difficulty)),
		layout.F("Timestamp", layout.Num(&h.Timestamp)),
		layout.F("SlotIndex", layout.Num(&h.SlotIndex)),
	}}
}

// Save is the decoded tree of a save file.
type Save struct {
	Header     SaveHeader
	Characters [CharacterCount]Character
	Party      Party
	Inventory  Inventory
	Progress   Progress
}

// Layout places each section of a save file at its offset.
func (s *Save) Layout() layout.Spec {
	return layout.Spec{Name: "Save", Size: SaveSize, Fields: []layout.Field{
		layout.F("Header", layout.Sub(&s.Header)),
		layout.F("Characters", layout.Structs(s.Characters[:])).At(OffsetCharacters),
		layout.F("Party", layout.Sub(&s.Party)).At(OffsetParty),
		layout.F("Inventory", layout.Sub(&s.Inventory)).At(OffsetInventory),
		layout.F("Progress", layout.Sub(&s.Progress)).At(OffsetProgress),
	}}
}

// Character returns the record with the given character ID.
func (s *Save) Character(id uint16) (*Character, bool) {
	for i := range s.Characters {
		if s.Characters[i].ID == id {
			return &s.Characters[i], true
		}
	}
	return nil, false
}
