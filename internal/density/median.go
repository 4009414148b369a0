package density

import "sort"

// medianFilter slides a median window over the histogram buckets. The window
// is forced odd; at the edges it shrinks to the buckets actually available,
// so edge medians are taken over a clamped window rather than padded zeros.
func medianFilter(hist [Levels]float64, window int) [Levels]float64 {
	if window < 3 {
		return hist
	}
	if window%2 == 0 {
		window++
	}
	half := window / 2

	var out [Levels]float64
	buf := make([]float64, 0, window)
	for i := 0; i < Levels; i++ {
		lo := max(i-half, 0)
		hi := min(i+half, Levels-1)

		buf = append(buf[:0], hist[lo:hi+1]...)
		sort.Float64s(buf)

		n := len(buf)
		if n%2 == 1 {
			out[i] = buf[n/2]
		} else {
			out[i] = (buf[n/2-1] + buf[n/2]) / 2
		}
	}
	return out
}
