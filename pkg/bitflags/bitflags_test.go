package bitflags

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/savekit/pkg/layout"
)

var widths = []int{1, 2, 4, 8, 16, 32}

func TestTable_Len(t *testing.T) {
	for _, bits := range widths {
		tbl := New(bits, 3)
		assert.Equal(t, 3*32/bits, tbl.Len(), "bits=%d", bits)
		assert.Equal(t, bits, tbl.Bits())
	}
}

func TestTable_SetGetAllValues(t *testing.T) {
	for _, bits := range widths[:4] { // every value of widths up to 8
		tbl := New(bits, 2)
		for i := 0; i < tbl.Len(); i++ {
			for v := uint32(0); v < 1<<uint(bits); v++ {
				tbl.Set(i, v)
				got, ok := tbl.Get(i)
				require.True(t, ok)
				require.Equal(t, v, got, "bits=%d index=%d", bits, i)
			}
		}
	}
}

func TestTable_SetGetWideValues(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, bits := range []int{16, 32} {
		tbl := New(bits, 4)
		for i := 0; i < tbl.Len(); i++ {
			for _, v := range []uint32{0, 1, uint32(1)<<uint(bits-1) | 1, uint32(uint64(1)<<uint(bits) - 1), rng.Uint32() >> uint(32-bits)} {
				tbl.Set(i, v)
				got, ok := tbl.Get(i)
				require.True(t, ok)
				require.Equal(t, v, got, "bits=%d index=%d", bits, i)
			}
		}
	}
}

func TestTable_NeighboursUntouched(t *testing.T) {
	for _, bits := range widths {
		tbl := New(bits, 4)
		top := uint32(uint64(1)<<uint(bits) - 1)
		rng := rand.New(rand.NewSource(int64(bits)))
		for i := 0; i < tbl.Len(); i++ {
			tbl.Set(i, rng.Uint32()&top)
		}

		for i := 0; i < tbl.Len(); i++ {
			before := make([]uint32, 0, 2)
			for _, n := range []int{i - 1, i + 1} {
				v, _ := tbl.Get(n)
				before = append(before, v)
			}

			tbl.Set(i, top)
			tbl.Set(i, 0)

			for k, n := range []int{i - 1, i + 1} {
				v, _ := tbl.Get(n)
				assert.Equal(t, before[k], v, "bits=%d: setting %d changed %d", bits, i, n)
			}
		}
	}
}

func TestTable_Layout(t *testing.T) {
	tbl := New(2, 2)
	tbl.Set(0, 3)
	tbl.Set(1, 1)
	tbl.Set(16, 2)
	assert.Equal(t, []uint32{0b0111, 0b10}, tbl.Words())

	tbl = New(4, 1)
	tbl.Set(7, 0xA)
	assert.Equal(t, uint32(0xA0000000), tbl.Words()[0])
}

func TestTable_OutOfRange(t *testing.T) {
	tbl := New(8, 1)

	_, ok := tbl.Get(4)
	assert.False(t, ok)
	_, ok = tbl.Get(-1)
	assert.False(t, ok)
	assert.False(t, tbl.IsSet(4))

	assert.Panics(t, func() { tbl.Set(4, 1) })
	assert.Panics(t, func() { tbl.Set(0, 0x100) })
	assert.Panics(t, func() { New(3, 1) })
}

func TestTable_OverWritesThrough(t *testing.T) {
	words := make([]uint32, 2)
	tbl := Over(1, words)
	tbl.Set(33, 1)
	assert.Equal(t, uint32(2), words[1])
}

func TestTable_CountAndEach(t *testing.T) {
	tbl := New(4, 2)
	tbl.Set(1, 5)
	tbl.Set(9, 1)
	tbl.Set(15, 0xF)

	var seen []int
	tbl.Each(func(i int, v uint32) { seen = append(seen, i) })
	assert.Equal(t, []int{1, 9, 15}, seen)
	assert.Equal(t, 3, tbl.Count())
}

func TestTable_Value(t *testing.T) {
	tbl := New(16, 2)
	tbl.Set(0, 0xBEEF)
	tbl.Set(3, 0x1234)

	out := make([]byte, 8)
	require.NoError(t, tbl.Value().Encode(out))
	assert.Equal(t, []byte{0xEF, 0xBE, 0, 0, 0, 0, 0x34, 0x12}, out)

	back := New(16, 2)
	require.NoError(t, back.Value().Decode(layout.NewCursor(out)))
	assert.Equal(t, tbl.Words(), back.Words())
}
