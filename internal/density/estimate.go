package density

import (
	"fmt"
	"sync"

	"gonum.org/v1/gonum/floats"

	"scribble-matte/pkg/grid"
)

// Options configures a density estimate.
type Options struct {
	Smooth  bool // Median-filter the histogram before normalization
	Window  int  // Median filter window (odd); 0 means DefaultWindow
	Workers int  // Row-partitioned histogram workers; <=1 is serial
}

// DefaultWindow is the median filter window used when Options.Window is 0.
const DefaultWindow = 5

// DefaultOptions returns the estimator defaults: smoothing on, window 5,
// serial accumulation.
func DefaultOptions() Options {
	return Options{
		Smooth:  true,
		Window:  DefaultWindow,
		Workers: 1,
	}
}

// Estimate builds the empirical intensity distribution of one color channel
// over the pixels selected by mask. It is a maximum-likelihood frequency
// estimate: a 256-bucket histogram of the masked samples, optionally median
// smoothed, normalized to unit mass.
//
// Scribble-derived histograms are sparse and spiky; the median filter
// regularizes them without assuming a parametric kernel shape.
//
// Estimate fails with ErrDimensionMismatch if channel and mask disagree in
// size, and with ErrEmptySampleSet if the mask selects no pixels. It is
// deterministic and has no side effects.
func Estimate(channel grid.Bytes, mask grid.Mask, opts Options) (Table, error) {
	if channel.W != mask.W || channel.H != mask.H {
		return Table{}, fmt.Errorf("channel %dx%d vs mask %dx%d: %w",
			channel.W, channel.H, mask.W, mask.H, ErrDimensionMismatch)
	}

	hist := histogram(channel, mask, opts.Workers)
	mass := floats.Sum(hist[:])
	if mass == 0 {
		return Table{}, ErrEmptySampleSet
	}

	if opts.Smooth {
		window := opts.Window
		if window == 0 {
			window = DefaultWindow
		}
		smoothed := medianFilter(hist, window)
		// A near-degenerate histogram (e.g. a single occupied bucket) can
		// be wiped out entirely by the median filter. Keep the raw counts
		// in that case rather than normalize zero mass.
		if m := floats.Sum(smoothed[:]); m > 0 {
			hist, mass = smoothed, m
		}
	}

	return normalize(hist, mass), nil
}

// histogram accumulates masked samples into 256 buckets. With more than one
// worker the rows are partitioned, each worker fills a private histogram,
// and the partials are summed once at the end; the accumulators are never
// shared between workers.
func histogram(channel grid.Bytes, mask grid.Mask, workers int) [Levels]float64 {
	if workers > channel.H {
		workers = channel.H
	}
	if workers <= 1 {
		var hist [Levels]float64
		accumulateRows(&hist, channel, mask, 0, channel.H)
		return hist
	}

	partials := make([][Levels]float64, workers)
	rowsPer := (channel.H + workers - 1) / workers

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		y0 := i * rowsPer
		y1 := min(y0+rowsPer, channel.H)
		if y0 >= y1 {
			break
		}
		wg.Add(1)
		go func(part *[Levels]float64, y0, y1 int) {
			defer wg.Done()
			accumulateRows(part, channel, mask, y0, y1)
		}(&partials[i], y0, y1)
	}
	wg.Wait()

	var hist [Levels]float64
	for i := range partials {
		floats.Add(hist[:], partials[i][:])
	}
	return hist
}

func accumulateRows(hist *[Levels]float64, channel grid.Bytes, mask grid.Mask, y0, y1 int) {
	for y := y0; y < y1; y++ {
		row := y * channel.W
		for x := 0; x < channel.W; x++ {
			if mask.Sel[row+x] {
				hist[channel.Pix[row+x]]++
			}
		}
	}
}
