// Package grid provides fixed-dimension, row-major grid types shared by the
// matting pipeline: byte grids for color channels, boolean grids for sample
// masks, and float64 grids for probability maps.
package grid

// Bytes is a W×H grid of 8-bit samples in row-major order. It is the
// in-memory form of one color channel of an image.
type Bytes struct {
	W, H int
	Pix  []uint8
}

// NewBytes allocates a zeroed W×H byte grid.
func NewBytes(w, h int) Bytes {
	return Bytes{W: w, H: h, Pix: make([]uint8, w*h)}
}

// At returns the sample at (x, y).
func (g Bytes) At(x, y int) uint8 {
	return g.Pix[y*g.W+x]
}

// Set stores a sample at (x, y).
func (g Bytes) Set(x, y int, v uint8) {
	g.Pix[y*g.W+x] = v
}

// SameSize reports whether g and o have identical dimensions.
func (g Bytes) SameSize(o Bytes) bool {
	return g.W == o.W && g.H == o.H
}

// Mask is a W×H binary selection grid in row-major order. A true cell marks
// a pixel that contributes to a density estimate.
type Mask struct {
	W, H int
	Sel  []bool
}

// NewMask allocates an all-false W×H mask.
func NewMask(w, h int) Mask {
	return Mask{W: w, H: h, Sel: make([]bool, w*h)}
}

// At reports whether (x, y) is selected.
func (m Mask) At(x, y int) bool {
	return m.Sel[y*m.W+x]
}

// Set marks (x, y) as selected or not.
func (m Mask) Set(x, y int, v bool) {
	m.Sel[y*m.W+x] = v
}

// Count returns the number of selected cells.
func (m Mask) Count() int {
	n := 0
	for _, s := range m.Sel {
		if s {
			n++
		}
	}
	return n
}

// Float64 is a W×H grid of float64 values in row-major order, used for
// per-pixel probability maps.
type Float64 struct {
	W, H int
	Val  []float64
}

// NewFloat64 allocates a zeroed W×H float grid.
func NewFloat64(w, h int) Float64 {
	return Float64{W: w, H: h, Val: make([]float64, w*h)}
}

// At returns the value at (x, y).
func (g Float64) At(x, y int) float64 {
	return g.Val[y*g.W+x]
}

// Set stores a value at (x, y).
func (g Float64) Set(x, y int, v float64) {
	g.Val[y*g.W+x] = v
}
