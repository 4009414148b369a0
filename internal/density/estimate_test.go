package density

import (
	"testing"

	"github.com/stretchr/testify/require"

	"scribble-matte/pkg/grid"
)

// bytesGrid builds a channel grid from a literal pixel slice.
func bytesGrid(t *testing.T, w, h int, pix []uint8) grid.Bytes {
	t.Helper()
	require.Len(t, pix, w*h)
	g := grid.NewBytes(w, h)
	copy(g.Pix, pix)
	return g
}

// fullMask selects every pixel.
func fullMask(w, h int) grid.Mask {
	m := grid.NewMask(w, h)
	for i := range m.Sel {
		m.Sel[i] = true
	}
	return m
}

func TestEstimateSumsToOne(t *testing.T) {
	channel := grid.NewBytes(16, 16)
	for i := range channel.Pix {
		channel.Pix[i] = uint8(i * 7 % 256)
	}
	mask := grid.NewMask(16, 16)
	for i := range mask.Sel {
		mask.Sel[i] = i%3 == 0
	}

	for _, smooth := range []bool{false, true} {
		table, err := Estimate(channel, mask, Options{Smooth: smooth, Window: 5})
		require.NoError(t, err)
		require.Len(t, table[:], Levels)
		require.InDelta(t, 1.0, table.Sum(), 1e-6)
		for i, v := range table {
			require.GreaterOrEqual(t, v, 0.0, "bucket %d", i)
		}
	}
}

func TestEstimateEmptySampleSet(t *testing.T) {
	channel := grid.NewBytes(8, 8)
	mask := grid.NewMask(8, 8)

	_, err := Estimate(channel, mask, DefaultOptions())
	require.ErrorIs(t, err, ErrEmptySampleSet)
}

func TestEstimateDimensionMismatch(t *testing.T) {
	channel := grid.NewBytes(8, 8)
	mask := fullMask(8, 7)

	_, err := Estimate(channel, mask, DefaultOptions())
	require.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestEstimateDeterministic(t *testing.T) {
	channel := grid.NewBytes(32, 32)
	for i := range channel.Pix {
		channel.Pix[i] = uint8(i * 13 % 256)
	}
	mask := fullMask(32, 32)
	opts := Options{Smooth: true, Window: 5}

	a, err := Estimate(channel, mask, opts)
	require.NoError(t, err)
	b, err := Estimate(channel, mask, opts)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestEstimateParallelMatchesSerial(t *testing.T) {
	channel := grid.NewBytes(64, 37)
	for i := range channel.Pix {
		channel.Pix[i] = uint8(i * 31 % 256)
	}
	mask := grid.NewMask(64, 37)
	for i := range mask.Sel {
		mask.Sel[i] = i%2 == 0
	}

	serial, err := Estimate(channel, mask, Options{Workers: 1})
	require.NoError(t, err)
	parallel, err := Estimate(channel, mask, Options{Workers: 8})
	require.NoError(t, err)
	require.Equal(t, serial, parallel)
}

func TestEstimateSmoothingChangesSpikyHistogram(t *testing.T) {
	// A tight cluster at 40-42 plus an isolated spike at 200: the filter
	// keeps the cluster but removes the spike, so the table must change.
	channel := grid.NewBytes(16, 16)
	for i := range channel.Pix {
		switch i % 4 {
		case 0:
			channel.Pix[i] = 40
		case 1:
			channel.Pix[i] = 41
		case 2:
			channel.Pix[i] = 42
		default:
			channel.Pix[i] = 200
		}
	}
	mask := fullMask(16, 16)

	raw, err := Estimate(channel, mask, Options{Smooth: false})
	require.NoError(t, err)
	smoothed, err := Estimate(channel, mask, Options{Smooth: true, Window: 5})
	require.NoError(t, err)

	require.NotEqual(t, raw, smoothed)
	require.InDelta(t, 1.0, smoothed.Sum(), 1e-6)
	for i, v := range smoothed {
		require.GreaterOrEqual(t, v, 0.0, "bucket %d", i)
	}
}

func TestEstimateOneHotSmoothing(t *testing.T) {
	// Every sample has the same value. The median filter would wipe out the
	// lone spike entirely; the estimator must keep the raw distribution
	// instead of normalizing zero mass.
	channel := grid.NewBytes(4, 4)
	for i := range channel.Pix {
		channel.Pix[i] = 7
	}
	mask := fullMask(4, 4)

	table, err := Estimate(channel, mask, Options{Smooth: true, Window: 5})
	require.NoError(t, err)
	require.Equal(t, 1.0, table[7])
	require.InDelta(t, 1.0, table.Sum(), 1e-6)
}

func TestEstimateAndScoreScenario(t *testing.T) {
	// 4x4 single-channel image scored against a model built from its
	// top-left 2x2 block (all zeros). The table degenerates to a point mass
	// at 0 and the joint map is the indicator of value-0 pixels.
	channel := bytesGrid(t, 4, 4, []uint8{
		0, 0, 1, 1,
		0, 0, 1, 1,
		2, 2, 3, 3,
		2, 2, 3, 3,
	})
	mask := grid.NewMask(4, 4)
	mask.Set(0, 0, true)
	mask.Set(1, 0, true)
	mask.Set(0, 1, true)
	mask.Set(1, 1, true)

	table, err := Estimate(channel, mask, Options{Smooth: false})
	require.NoError(t, err)
	require.Equal(t, 1.0, table[0])
	for i := 1; i < Levels; i++ {
		require.Equal(t, 0.0, table[i], "bucket %d", i)
	}

	pm, err := Score([3]Table{table, table, table}, [3]grid.Bytes{channel, channel, channel}, DefaultScoreOptions())
	require.NoError(t, err)
	require.Equal(t, []float64{
		1, 1, 0, 0,
		1, 1, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	}, pm.Val)
}
