package fixvec

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/savekit/pkg/layout"
)

func TestVec_PushUntilFull(t *testing.T) {
	v := New[uint16](4)
	for i := 0; i < 4; i++ {
		require.NoError(t, v.TryPush(uint16(i+10)))
		assert.Equal(t, i+1, v.Len())
	}

	err := v.TryPush(99)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCapacity)
	assert.Equal(t, 4, v.Len())
	assert.Equal(t, []uint16{10, 11, 12, 13}, v.All())
}

func TestVec_Pop(t *testing.T) {
	v := New[int](2)

	_, err := v.TryPop()
	var ce *CapacityError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "pop", ce.Op)

	require.NoError(t, v.TryPush(1))
	require.NoError(t, v.TryPush(2))
	x, err := v.TryPop()
	require.NoError(t, err)
	assert.Equal(t, 2, x)
	assert.Equal(t, 1, v.Len())
}

func TestVec_GetSet(t *testing.T) {
	v := New[string](3)
	require.NoError(t, v.TryPush("a"))

	got, ok := v.Get(0)
	assert.True(t, ok)
	assert.Equal(t, "a", got)

	_, ok = v.Get(1)
	assert.False(t, ok, "slot past length is absent")

	v.Set(0, "b")
	got, _ = v.Get(0)
	assert.Equal(t, "b", got)

	assert.Panics(t, func() { v.Set(1, "c") })
}

func TestVec_ClearKeepsStorage(t *testing.T) {
	v := New[uint8](3)
	require.NoError(t, v.TryPush(7))
	require.NoError(t, v.TryPush(8))
	v.Clear()

	assert.Equal(t, 0, v.Len())
	_, ok := v.Get(0)
	assert.False(t, ok)
	assert.Equal(t, []uint8{7, 8, 0}, v.items)
}

func TestVec_Codec(t *testing.T) {
	buf := make([]byte, 4+5*2)
	binary.LittleEndian.PutUint32(buf, 2)
	for i := 0; i < 5; i++ {
		binary.LittleEndian.PutUint16(buf[4+2*i:], uint16(100+i))
	}

	v := New[uint16](5)
	codec := v.Value(5, layout.Num[uint16])
	assert.Equal(t, 14, codec.Size())
	require.NoError(t, codec.Decode(layout.NewCursor(buf)))
	assert.Equal(t, []uint16{100, 101}, v.All())

	t.Run("round trip keeps absent elements", func(t *testing.T) {
		out := make([]byte, len(buf))
		require.NoError(t, codec.Encode(out))
		assert.Equal(t, buf, out)
	})

	t.Run("pop then push overwrites only the reused slot", func(t *testing.T) {
		_, err := v.TryPop()
		require.NoError(t, err)
		require.NoError(t, v.TryPush(7))

		out := append([]byte(nil), buf...)
		require.NoError(t, codec.Encode(out))
		assert.Equal(t, uint16(7), binary.LittleEndian.Uint16(out[6:]))
		assert.Equal(t, buf[8:], out[8:])
	})

	t.Run("stored length above capacity", func(t *testing.T) {
		bad := append([]byte(nil), buf...)
		binary.LittleEndian.PutUint32(bad, 6)
		err := New[uint16](5).Value(5, layout.Num[uint16]).Decode(layout.NewCursor(bad))
		assert.ErrorIs(t, err, layout.ErrFormat)
	})
}

func TestVec_ZeroValue(t *testing.T) {
	var v Vec[uint32]
	assert.Equal(t, 0, v.Cap())
	assert.ErrorIs(t, v.TryPush(1), ErrCapacity)

	codec := v.Value(3, layout.Num[uint32])
	assert.Equal(t, 16, codec.Size())
	assert.Equal(t, 3, v.Cap())
	require.NoError(t, v.TryPush(1))

	assert.Panics(t, func() { v.Value(4, layout.Num[uint32]) })
}
