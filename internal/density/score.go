package density

import (
	"fmt"
	"math"
	"sync"

	"scribble-matte/pkg/grid"
)

// ScoreOptions configures joint scoring.
type ScoreOptions struct {
	Workers int     // Row-partitioned scoring workers; <=1 is serial
	Floor   float64 // Probability substituted for empty buckets in log space
}

// DefaultFloor replaces zero-probability buckets in log-space scoring so
// log(0) never reaches the output map.
const DefaultFloor = 1e-12

// DefaultScoreOptions returns serial scoring with the default log floor.
func DefaultScoreOptions() ScoreOptions {
	return ScoreOptions{
		Workers: 1,
		Floor:   DefaultFloor,
	}
}

// Score computes the joint per-pixel likelihood of an image under one class
// model: for each pixel, the product of the three per-channel table lookups
// at that pixel's intensities. The three tables must have been estimated
// against the same class mask, with table index matching channel index.
//
// Channels are assumed conditionally independent given the class; callers
// needing channel covariance must model it externally.
//
// Per-channel probabilities are often tiny (below 1e-5 on scribble-sized
// samples), so the triple product can reach ~1e-15 for low-likelihood
// pixels. That is still well inside float64 range; Score accepts the
// bounded underflow and stays in linear space. Use ScoreLog when the maps
// feed further likelihood arithmetic.
func Score(tables [3]Table, channels [3]grid.Bytes, opts ScoreOptions) (grid.Float64, error) {
	w, h, err := commonDims(channels)
	if err != nil {
		return grid.Float64{}, err
	}

	out := grid.NewFloat64(w, h)
	scoreRows(out, tables, channels, opts.Workers, func(p0, p1, p2 float64) float64 {
		return p0 * p1 * p2
	})
	return out, nil
}

// ScoreLog is Score in log-probability space: each output value is the sum
// of the logs of the three table lookups. Zero-probability buckets are
// floored at opts.Floor before the log, so the map never contains -Inf.
// The result is returned in log space; callers compare or exponentiate as
// needed.
func ScoreLog(tables [3]Table, channels [3]grid.Bytes, opts ScoreOptions) (grid.Float64, error) {
	w, h, err := commonDims(channels)
	if err != nil {
		return grid.Float64{}, err
	}

	floor := opts.Floor
	if floor <= 0 {
		floor = DefaultFloor
	}
	logLookup := func(p float64) float64 {
		if p < floor {
			p = floor
		}
		return math.Log(p)
	}

	out := grid.NewFloat64(w, h)
	scoreRows(out, tables, channels, opts.Workers, func(p0, p1, p2 float64) float64 {
		return logLookup(p0) + logLookup(p1) + logLookup(p2)
	})
	return out, nil
}

// commonDims validates that all three channel grids agree in size.
func commonDims(channels [3]grid.Bytes) (w, h int, err error) {
	w, h = channels[0].W, channels[0].H
	for i := 1; i < 3; i++ {
		if channels[i].W != w || channels[i].H != h {
			return 0, 0, fmt.Errorf("channel %d is %dx%d, channel 0 is %dx%d: %w",
				i, channels[i].W, channels[i].H, w, h, ErrDimensionMismatch)
		}
	}
	return w, h, nil
}

// scoreRows fills the output map row by row. Scoring has no cross-pixel
// dependency, so with multiple workers the rows are simply partitioned;
// each worker writes a disjoint range of the output.
func scoreRows(out grid.Float64, tables [3]Table, channels [3]grid.Bytes, workers int, combine func(p0, p1, p2 float64) float64) {
	fill := func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := y * out.W
			for x := 0; x < out.W; x++ {
				i := row + x
				out.Val[i] = combine(
					tables[0][channels[0].Pix[i]],
					tables[1][channels[1].Pix[i]],
					tables[2][channels[2].Pix[i]])
			}
		}
	}

	if workers > out.H {
		workers = out.H
	}
	if workers <= 1 {
		fill(0, out.H)
		return
	}

	rowsPer := (out.H + workers - 1) / workers
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		y0 := i * rowsPer
		y1 := min(y0+rowsPer, out.H)
		if y0 >= y1 {
			break
		}
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			fill(y0, y1)
		}(y0, y1)
	}
	wg.Wait()
}
