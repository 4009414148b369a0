package grid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBytesRowMajorAddressing(t *testing.T) {
	g := NewBytes(3, 2)
	g.Set(2, 1, 42)
	require.Equal(t, uint8(42), g.At(2, 1))
	require.Equal(t, uint8(42), g.Pix[1*3+2])
}

func TestBytesSameSize(t *testing.T) {
	require.True(t, NewBytes(4, 3).SameSize(NewBytes(4, 3)))
	require.False(t, NewBytes(4, 3).SameSize(NewBytes(3, 4)))
}

func TestMaskCount(t *testing.T) {
	m := NewMask(4, 4)
	require.Equal(t, 0, m.Count())

	m.Set(0, 0, true)
	m.Set(3, 3, true)
	m.Set(1, 2, true)
	require.Equal(t, 3, m.Count())
	require.True(t, m.At(1, 2))

	m.Set(1, 2, false)
	require.Equal(t, 2, m.Count())
}

func TestFloat64Addressing(t *testing.T) {
	g := NewFloat64(2, 2)
	g.Set(1, 0, 0.25)
	require.Equal(t, 0.25, g.At(1, 0))
	require.Equal(t, 0.25, g.Val[1])
}
