// Package sample builds synthetic save and system files: random bytes with
// every asserted constant and length prefix set to a valid value. They
// exercise the same code paths as real files, including unmodelled regions,
// without shipping game data.
package sample

import (
	"encoding/binary"
	"math/rand"

	"github.com/ssargent/savekit/pkg/savedata"
)

// Save returns a valid save file derived from seed.
func Save(seed int64) []byte {
	rng := rand.New(rand.NewSource(seed))
	buf := make([]byte, savedata.SaveSize)
	rng.Read(buf)

	le := binary.LittleEndian
	le.PutUint32(buf[0:], savedata.SaveMagic)
	le.PutUint32(buf[4:], savedata.SaveVersion)
	le.PutUint32(buf[savedata.OffsetParty+savedata.RosterOffset:], uint32(rng.Intn(savedata.RosterCap+1)))
	le.PutUint32(buf[savedata.OffsetParty+savedata.ReserveOffset:], uint32(rng.Intn(savedata.ReserveCap+1)))
	return buf
}

// System returns a valid system file derived from seed.
func System(seed int64) []byte {
	rng := rand.New(rand.NewSource(seed))
	buf := make([]byte, savedata.SystemSize)
	rng.Read(buf)

	le := binary.LittleEndian
	le.PutUint32(buf[0:], savedata.SystemMagic)
	le.PutUint32(buf[4:], savedata.SystemVersion)
	return buf
}
