package savedata

import (
	"github.com/ssargent/savekit/pkg/bitflags"
	"github.com/ssargent/savekit/pkg/chrono"
	"github.com/ssargent/savekit/pkg/layout"
)

const (
	SystemMagic   = 0x54535953 // "SYST"
	SystemVersion = 0x00010002
	SystemSize    = 0x1000

	AchievementWords = 8   // 1 bit, 256 achievements
	MusicWords       = 8   // 2 bits, 128 tracks
	GalleryCount     = 128 // gallery entries, IDs 0..127

	OffsetAchievements = 0x0040
	OffsetMusic        = 0x0060
)

// Music track states stored in the 2-bit music flags.
const (
	TrackLocked uint32 = iota
	TrackHeard
	TrackUnlocked
)

// SystemHeader opens every system file.
type SystemHeader struct {
	Magic      uint32
	Version    uint32
	ClearCount uint32
	LastSlot   uint8
}

// Layout declares the header and checks its magic and version.
func (h *SystemHeader) Layout() layout.Spec {
	return layout.Spec{Name: "SystemHeader", Size: 0x10, Fields: []layout.Field{
		layout.F("Magic", layout.Num(&h.Magic)).Expect(SystemMagic),
		layout.F("Version", layout.Num(&h.Version)).ExpectFunc(SystemVersion, versionCheck("system", SystemVersion)),
		layout.F("ClearCount", layout.Num(&h.ClearCount)),
		layout.F("LastSlot", layout.Num(&h.LastSlot)),
	}}
}

// Settings are the option menu values.
type Settings struct {
	BGMVolume   uint8
	SEVolume    uint8
	VoiceVolume uint8
	TextSpeed   uint8
	Brightness  float32
	Language    uint8
	Vibration   uint8
}

// Layout declares the option values.
func (s *Settings) Layout() layout.Spec {
	return layout.Spec{Name: "Settings", Size: 0x30, Fields: []layout.Field{
		layout.F("BGMVolume", layout.Num(&s.BGMVolume)),
		layout.F("SEVolume", layout.Num(&s.SEVolume)),
		layout.F("VoiceVolume", layout.Num(&s.VoiceVolume)),
		layout.F("TextSpeed", layout.Num(&s.TextSpeed)),
		layout.F("Brightness", layout.Float32(&s.Brightness)),
		layout.F("Language", layout.Num(&s.Language)),
		layout.F("Vibration", layout.Num(&s.Vibration)),
	}}
}

// System is the decoded tree of a system file.
type System struct {
	Header         SystemHeader
	Settings       Settings
	Achievements   [AchievementWords]uint32
	Music          [MusicWords]uint32
	Gallery        [GalleryCount]uint16
	GalleryCounter uint16
	Seed           uint32
}

// Layout places each section of a system file at its offset.
func (s *System) Layout() layout.Spec {
	return layout.Spec{Name: "System", Size: SystemSize, Fields: []layout.Field{
		layout.F("Header", layout.Sub(&s.Header)),
		layout.F("Settings", layout.Sub(&s.Settings)),
		layout.F("Achievements", layout.Nums(s.Achievements[:])).At(OffsetAchievements),
		layout.F("Music", layout.Nums(s.Music[:])).At(OffsetMusic),
		layout.F("Gallery", layout.Nums(s.Gallery[:])),
		layout.F("GalleryCounter", layout.Num(&s.GalleryCounter)),
		layout.F("Seed", layout.Num(&s.Seed)).At(0x188).Hidden(),
	}}
}

// AchievementFlags returns one bit per achievement.
func (s *System) AchievementFlags() *bitflags.Table { return bitflags.Over(1, s.Achievements[:]) }

// MusicFlags returns the 2-bit track states (TrackLocked and up).
func (s *System) MusicFlags() *bitflags.Table { return bitflags.Over(2, s.Music[:]) }

// GalleryOrder returns the order gallery entries were unlocked in.
func (s *System) GalleryOrder() chrono.Order {
	return chrono.NewTable(s.Gallery[:], &s.GalleryCounter, 0)
}
