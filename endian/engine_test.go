package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckEndianness(t *testing.T) {
	order := CheckEndianness()
	require.Contains(t, []binary.ByteOrder{binary.LittleEndian, binary.BigEndian}, order)

	// Exactly one of the two predicates holds.
	require.NotEqual(t, IsNativeLittleEndian(), IsNativeBigEndian())
}

func TestCompareNativeEndian(t *testing.T) {
	native := CheckEndianness()
	if native == binary.LittleEndian {
		require.True(t, CompareNativeEndian(GetLittleEndianEngine()))
		require.False(t, CompareNativeEndian(GetBigEndianEngine()))
	} else {
		require.True(t, CompareNativeEndian(GetBigEndianEngine()))
		require.False(t, CompareNativeEndian(GetLittleEndianEngine()))
	}
}

func TestEngines(t *testing.T) {
	le := GetLittleEndianEngine()
	be := GetBigEndianEngine()

	buf := []byte{0x63, 0x62, 0x61, 0x00}
	require.Equal(t, uint32(0x616263), le.Uint32(buf))
	require.Equal(t, uint32(0x616263), be.Uint32(Reverse(buf)))
}

func TestReverse(t *testing.T) {
	require.Equal(t, []byte{4, 3, 2, 1}, Reverse([]byte{1, 2, 3, 4}))
	require.Empty(t, Reverse(nil))

	// Input must not be modified.
	in := []byte{1, 2, 3}
	_ = Reverse(in)
	require.Equal(t, []byte{1, 2, 3}, in)
}
