package buf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddOverflowSafe(t *testing.T) {
	v, ok := AddOverflowSafe(1, 2)
	require.True(t, ok)
	require.Equal(t, 3, v)

	_, ok = AddOverflowSafe(math.MaxInt, 1)
	require.False(t, ok)

	_, ok = AddOverflowSafe(math.MinInt, -1)
	require.False(t, ok)
}

func TestMulOverflowSafe(t *testing.T) {
	v, ok := MulOverflowSafe(546, 4)
	require.True(t, ok)
	require.Equal(t, 2184, v)

	v, ok = MulOverflowSafe(0, math.MaxInt)
	require.True(t, ok)
	require.Zero(t, v)

	_, ok = MulOverflowSafe(math.MaxInt, 2)
	require.False(t, ok)
}

func TestCheckRange(t *testing.T) {
	end, err := CheckRange(100, 10, 10, 4)
	require.NoError(t, err)
	require.Equal(t, 50, end)

	_, err = CheckRange(100, 10, 30, 4)
	require.Error(t, err)

	_, err = CheckRange(100, -1, 1, 1)
	require.Error(t, err)

	_, err = CheckRange(100, 0, math.MaxInt, 2)
	require.Error(t, err)
}

func TestSliceHas(t *testing.T) {
	b := []byte{1, 2, 3, 4}

	s, ok := Slice(b, 1, 2)
	require.True(t, ok)
	require.Equal(t, []byte{2, 3}, s)

	_, ok = Slice(b, 3, 2)
	require.False(t, ok)
	_, ok = Slice(b, -1, 1)
	require.False(t, ok)

	require.True(t, Has(b, 0, 4))
	require.False(t, Has(b, 0, 5))
	require.True(t, Has(b, 4, 0))
}
