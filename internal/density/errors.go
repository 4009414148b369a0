package density

import "errors"

var (
	// ErrDimensionMismatch is returned when two grids passed to the same
	// call disagree in width or height.
	ErrDimensionMismatch = errors.New("grid dimensions do not match")

	// ErrEmptySampleSet is returned when a density estimate is requested
	// against a mask that selects zero pixels. A model cannot be built from
	// zero observations; returning a uniform table would silently fabricate
	// one, so the call fails instead.
	ErrEmptySampleSet = errors.New("sample mask selects no pixels")
)
