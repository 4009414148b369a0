package density

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMedianFilterConstantUnchanged(t *testing.T) {
	var hist [Levels]float64
	for i := range hist {
		hist[i] = 4
	}
	require.Equal(t, hist, medianFilter(hist, 5))
}

func TestMedianFilterRemovesIsolatedSpike(t *testing.T) {
	var hist [Levels]float64
	hist[128] = 100

	out := medianFilter(hist, 5)
	require.Equal(t, 0.0, out[128])
}

func TestMedianFilterEdgeClamping(t *testing.T) {
	var hist [Levels]float64
	hist[0] = 6
	hist[1] = 2
	hist[2] = 4

	out := medianFilter(hist, 5)
	// At bucket 0 the window shrinks to buckets 0..2: median of {6, 2, 4}.
	require.Equal(t, 4.0, out[0])
	// At bucket 1 the window covers buckets 0..3, an even count: the mean
	// of the two middle values of {6, 2, 4, 0} sorted.
	require.Equal(t, 3.0, out[1])
}

func TestMedianFilterSmallOrEvenWindow(t *testing.T) {
	var hist [Levels]float64
	hist[10] = 1
	hist[11] = 2
	hist[12] = 3

	// Window below 3 is a no-op.
	require.Equal(t, hist, medianFilter(hist, 1))

	// An even window is widened to the next odd size.
	require.Equal(t, medianFilter(hist, 5), medianFilter(hist, 4))
}
