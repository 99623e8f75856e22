package backup

import (
	"errors"
	"fmt"
	"hash/crc32"
	"time"

	"github.com/ssargent/savekit/pkg/layout"
	"github.com/ssargent/savekit/pkg/savefile"
)

// ErrCorruption is returned when a stored snapshot fails its checksum.
var ErrCorruption = errors.New("backup: snapshot corrupted")

const (
	headerSize = 20

	flagZstd uint8 = 1 << 0
)

// header precedes every stored snapshot.
// Format: [CRC32(4)][Flags(1)][Kind(1)][NameSize(2)][Size(4)][Timestamp(8)][Name][Payload]
type header struct {
	CRC32     uint32 // over every byte after this field
	Flags     uint8
	Kind      uint8
	NameSize  uint16
	Size      uint32 // uncompressed payload length
	Timestamp uint64 // unix nanoseconds
}

func (h *header) Layout() layout.Spec {
	return layout.Spec{Name: "Snapshot", Size: headerSize, Fields: []layout.Field{
		layout.F("CRC32", layout.Num(&h.CRC32)),
		layout.F("Flags", layout.Num(&h.Flags)),
		layout.F("Kind", layout.Num(&h.Kind)),
		layout.F("NameSize", layout.Num(&h.NameSize)),
		layout.F("Size", layout.Num(&h.Size)),
		layout.F("Timestamp", layout.Num(&h.Timestamp)),
	}}
}

// envelope is a decoded snapshot record. Payload is as stored, so it is
// still compressed when Flags carries flagZstd.
type envelope struct {
	header
	Name    string
	Payload []byte
}

func (e *envelope) encode() ([]byte, error) {
	if len(e.Name) > int(^uint16(0)) {
		return nil, fmt.Errorf("snapshot name too long: %d bytes", len(e.Name))
	}
	e.NameSize = uint16(len(e.Name))

	buf := make([]byte, headerSize+len(e.Name)+len(e.Payload))
	copy(buf[headerSize:], e.Name)
	copy(buf[headerSize+len(e.Name):], e.Payload)
	e.CRC32 = 0
	if err := layout.Encode(buf, &e.header); err != nil {
		return nil, err
	}
	e.CRC32 = crc32.ChecksumIEEE(buf[4:])
	if err := layout.Num(&e.CRC32).Encode(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func decodeEnvelope(data []byte) (*envelope, error) {
	e := &envelope{}
	if err := layout.Read(data, &e.header); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruption, err)
	}
	if sum := crc32.ChecksumIEEE(data[4:]); sum != e.CRC32 {
		return nil, fmt.Errorf("%w: CRC32 mismatch: %#08x != %#08x", ErrCorruption, e.CRC32, sum)
	}
	end := headerSize + int(e.NameSize)
	if len(data) < end {
		return nil, fmt.Errorf("%w: name exceeds record", ErrCorruption)
	}
	e.Name = string(data[headerSize:end])
	e.Payload = data[end:]
	return e, nil
}

func (e *envelope) kind() savefile.Kind {
	return savefile.Kind(e.Kind)
}

func (e *envelope) created() time.Time {
	return time.Unix(0, int64(e.Timestamp))
}
