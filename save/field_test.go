package save

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func flagAt(id string, off int64, bit uint8) Descriptor {
	return Descriptor{ID: id, Group: "secrets", Section: AbsoluteSection, Offset: off, Bit: bit}
}

func counterAt(id string, off int64, width int) Descriptor {
	return Descriptor{ID: id, Group: "counters", Section: AbsoluteSection, Offset: off, Width: width}
}

func TestBitIsolation(t *testing.T) {
	// two flags sharing a byte must not disturb each other or the
	// remaining six bits
	b := make([]byte, 8)
	b[3] = 0b10100101

	d1 := flagAt("a", 3, 1)
	d2 := flagAt("b", 3, 5)

	require.NoError(t, WriteBit(b, d1, true))
	require.NoError(t, WriteBit(b, d2, false))

	v1, err := ReadBit(b, d1)
	require.NoError(t, err)
	require.True(t, v1)
	v2, err := ReadBit(b, d2)
	require.NoError(t, err)
	require.False(t, v2)

	require.Equal(t, byte(0b10000111), b[3])
}

func TestWriteBitReadModifyWrite(t *testing.T) {
	b := []byte{0xFF}
	require.NoError(t, WriteBit(b, flagAt("a", 0, 3), false))
	require.Equal(t, byte(0xF7), b[0])

	require.NoError(t, WriteBit(b, flagAt("a", 0, 3), true))
	require.Equal(t, byte(0xFF), b[0])
}

func TestBitOutOfBounds(t *testing.T) {
	b := make([]byte, 4)
	_, err := ReadBit(b, flagAt("a", 4, 0))
	kind, ok := KindOf(err)
	require.True(t, ok)
	require.Equal(t, ErrKindOutOfBounds, kind)

	err = WriteBit(b, flagAt("a", 100, 0), true)
	kind, _ = KindOf(err)
	require.Equal(t, ErrKindOutOfBounds, kind)
}

func TestIntRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		desc Descriptor
		val  int64
		want []byte
	}{
		{"u16le", counterAt("c", 0, 2), 9999, []byte{0x0F, 0x27}},
		{"u32le", counterAt("c", 0, 4), 0x01020304, []byte{0x04, 0x03, 0x02, 0x01}},
		{"u8", counterAt("c", 0, 1), 0xAB, []byte{0xAB}},
		{"u16be", Descriptor{ID: "c", Section: AbsoluteSection, Width: 2, BigEndian: true}, 0x0102, []byte{0x01, 0x02}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := make([]byte, 8)
			require.NoError(t, WriteInt(b, tc.desc, tc.val))
			require.Equal(t, tc.want, b[:len(tc.want)])

			got, err := ReadInt(b, tc.desc)
			require.NoError(t, err)
			require.Equal(t, tc.val, got)
		})
	}
}

func TestSignedIntRoundTrip(t *testing.T) {
	d := Descriptor{ID: "loss", Section: AbsoluteSection, Offset: 2, Width: 2, Signed: true}
	b := make([]byte, 8)

	require.NoError(t, WriteInt(b, d, -3))
	require.Equal(t, []byte{0xFD, 0xFF}, b[2:4])

	got, err := ReadInt(b, d)
	require.NoError(t, err)
	require.Equal(t, int64(-3), got)
}

func TestWriteIntRangeEnforcement(t *testing.T) {
	b := make([]byte, 8)
	orig := make([]byte, len(b))
	copy(orig, b)

	tests := []struct {
		name string
		desc Descriptor
		val  int64
	}{
		{"u16 overflow", counterAt("c", 0, 2), 65536},
		{"u8 overflow", counterAt("c", 0, 1), 256},
		{"negative into unsigned", counterAt("c", 0, 2), -1},
		{"s8 overflow", Descriptor{ID: "c", Section: AbsoluteSection, Width: 1, Signed: true}, 128},
		{"s8 underflow", Descriptor{ID: "c", Section: AbsoluteSection, Width: 1, Signed: true}, -129},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := WriteInt(b, tc.desc, tc.val)
			kind, ok := KindOf(err)
			require.True(t, ok)
			require.Equal(t, ErrKindRange, kind)
			require.Equal(t, orig, b, "buffer must be untouched after a range failure")
		})
	}
}

func TestIntBoundaryValues(t *testing.T) {
	b := make([]byte, 8)

	require.NoError(t, WriteInt(b, counterAt("c", 0, 2), 65535))
	got, err := ReadInt(b, counterAt("c", 0, 2))
	require.NoError(t, err)
	require.Equal(t, int64(65535), got)

	s := Descriptor{ID: "c", Section: AbsoluteSection, Width: 1, Signed: true}
	require.NoError(t, WriteInt(b, s, -128))
	got, err = ReadInt(b, s)
	require.NoError(t, err)
	require.Equal(t, int64(-128), got)
}

func TestKindMismatch(t *testing.T) {
	b := make([]byte, 8)

	_, err := ReadInt(b, flagAt("a", 0, 0))
	kind, _ := KindOf(err)
	require.Equal(t, ErrKindConfig, kind)

	_, err = ReadBit(b, counterAt("c", 0, 2))
	kind, _ = KindOf(err)
	require.Equal(t, ErrKindConfig, kind)
}

func TestIntOutOfBounds(t *testing.T) {
	b := make([]byte, 4)
	err := WriteInt(b, counterAt("c", 3, 2), 1)
	kind, _ := KindOf(err)
	require.Equal(t, ErrKindOutOfBounds, kind)
}
