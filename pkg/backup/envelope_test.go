package backup

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/savekit/pkg/layout"
	"github.com/ssargent/savekit/pkg/savefile"
)

func TestEnvelope_EncodeDecodeRoundTrip(t *testing.T) {
	testCases := []struct {
		name    string
		file    string
		payload []byte
		flags   uint8
	}{
		{name: "simple", file: "slot1.sav", payload: []byte("payload")},
		{name: "empty name", file: "", payload: []byte{1, 2, 3}},
		{name: "empty payload", file: "system.sav", payload: nil},
		{name: "large payload", file: "slot2.sav", payload: bytes.Repeat([]byte{0xAB}, 65536)},
		{name: "compressed flag", file: "slot3.sav", payload: []byte{9, 9}, flags: flagZstd},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in := &envelope{Name: tc.file, Payload: tc.payload}
			in.Flags = tc.flags
			in.Kind = uint8(savefile.KindSave)
			in.Size = uint32(len(tc.payload))
			in.Timestamp = 1700000000123456789

			rec, err := in.encode()
			require.NoError(t, err)
			assert.Len(t, rec, headerSize+len(tc.file)+len(tc.payload))

			out, err := decodeEnvelope(rec)
			require.NoError(t, err)
			assert.Equal(t, tc.file, out.Name)
			assert.Equal(t, len(tc.payload), len(out.Payload))
			assert.True(t, bytes.Equal(tc.payload, out.Payload))
			assert.Equal(t, tc.flags, out.Flags)
			assert.Equal(t, savefile.KindSave, out.kind())
			assert.Equal(t, int64(1700000000123456789), out.created().UnixNano())
		})
	}
}

func TestEnvelope_DetectsCorruption(t *testing.T) {
	in := &envelope{Name: "slot1.sav", Payload: []byte("some bytes")}
	rec, err := in.encode()
	require.NoError(t, err)

	for _, off := range []int{4, 8, headerSize, len(rec) - 1} {
		bad := bytes.Clone(rec)
		bad[off] ^= 0x01
		_, err := decodeEnvelope(bad)
		assert.ErrorIs(t, err, ErrCorruption, "flipped byte %d", off)
	}
}

func TestEnvelope_ShortRecord(t *testing.T) {
	_, err := decodeEnvelope(make([]byte, headerSize-1))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorruption)
}

func TestEnvelope_HeaderLayout(t *testing.T) {
	assert.Equal(t, headerSize, layout.SizeOf(&header{}))
}
