package slot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/savekit/pkg/layout"
)

func TestSlot_U16(t *testing.T) {
	testCases := []struct {
		raw   uint16
		empty bool
	}{
		{raw: 0, empty: false},
		{raw: 1, empty: false},
		{raw: 0x7FFF, empty: false},
		{raw: 0xFFFE, empty: false},
		{raw: 0xFFFF, empty: true},
	}

	for _, tc := range testCases {
		s := Slot[uint16]{Raw: tc.raw}
		assert.Equal(t, tc.empty, s.IsEmpty(), "raw=%#x", tc.raw)

		v, ok := s.Get()
		assert.Equal(t, !tc.empty, ok)
		if ok {
			assert.Equal(t, tc.raw, v)
		}
	}
}

func TestSlot_Mutation(t *testing.T) {
	var s Slot[uint16]

	s.Put(0, false)
	assert.Equal(t, uint16(0xFFFF), s.Raw)

	s.Put(42, true)
	assert.Equal(t, uint16(42), s.Raw)

	s.SetEmpty()
	assert.True(t, s.IsEmpty())

	s.Set(0)
	v, ok := s.Get()
	assert.True(t, ok)
	assert.Equal(t, uint16(0), v)

	assert.Panics(t, func() { s.Set(0xFFFF) })
}

func TestSlot_Widths(t *testing.T) {
	assert.Equal(t, uint8(0xFF), Sentinel[uint8]())
	assert.Equal(t, uint32(0xFFFFFFFF), Sentinel[uint32]())
	assert.True(t, Empty[uint8]().IsEmpty())
	assert.Equal(t, "9", Of[uint32](9).String())
	assert.Equal(t, "-", Empty[uint32]().String())
}

func TestSlot_Codec(t *testing.T) {
	slots := []Slot[uint16]{Of[uint16](3), Empty[uint16]()}
	out := make([]byte, 4)
	require.NoError(t, Values(slots).Encode(out))
	assert.Equal(t, []byte{3, 0, 0xFF, 0xFF}, out)

	back := make([]Slot[uint16], 2)
	require.NoError(t, Values(back).Decode(layout.NewCursor(out)))
	assert.Equal(t, slots, back)
}

func TestAccessory(t *testing.T) {
	testCases := []struct {
		name  string
		acc   Accessory
		empty bool
	}{
		{name: "assigned", acc: Accessory{ID: 5, Level: 1}, empty: false},
		{name: "zero id", acc: Accessory{ID: 0, Level: 3, Grade: 2}, empty: true},
		{name: "zero level", acc: Accessory{ID: 9, Level: 0}, empty: true},
		{name: "all-ones id is assigned", acc: Accessory{ID: 0xFFFF, Level: 1}, empty: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.empty, tc.acc.IsEmpty())
			_, ok := tc.acc.Get()
			assert.Equal(t, !tc.empty, ok)
		})
	}

	t.Run("set and clear", func(t *testing.T) {
		a := Accessory{Grade: 7}
		a.Put(AccessoryValue{ID: 2, Level: 4, Grade: 1}, true)
		v, ok := a.Get()
		require.True(t, ok)
		assert.Equal(t, AccessoryValue{ID: 2, Level: 4, Grade: 1}, v)

		a.SetEmpty()
		assert.True(t, a.IsEmpty())
		assert.Equal(t, uint8(1), a.Grade)

		assert.Panics(t, func() { a.Set(AccessoryValue{ID: 1}) })
	})

	assert.Equal(t, 4, layout.SizeOf(&Accessory{}))
}
