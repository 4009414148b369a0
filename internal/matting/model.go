// Package matting ties the per-channel density estimators into per-class
// color models and turns the foreground/background probability maps into a
// classification mask.
package matting

import (
	"fmt"

	"scribble-matte/internal/density"
	"scribble-matte/pkg/grid"
)

// Model is the color model of one class: one probability table per channel,
// indexed consistently with the channel grids it was built from (0, 1, 2).
// Foreground and background models are always built and owned independently.
type Model struct {
	Tables [3]density.Table
}

// Build estimates one table per channel from the class scribble mask.
func Build(channels [3]grid.Bytes, mask grid.Mask, opts density.Options) (Model, error) {
	var m Model
	for i := range channels {
		t, err := density.Estimate(channels[i], mask, opts)
		if err != nil {
			return Model{}, fmt.Errorf("channel %d: %w", i, err)
		}
		m.Tables[i] = t
	}
	return m, nil
}

// Score returns the per-pixel joint likelihood of the image under the model.
func (m Model) Score(channels [3]grid.Bytes, opts density.ScoreOptions) (grid.Float64, error) {
	return density.Score(m.Tables, channels, opts)
}

// ScoreLog returns the per-pixel joint log-likelihood of the image under
// the model.
func (m Model) ScoreLog(channels [3]grid.Bytes, opts density.ScoreOptions) (grid.Float64, error) {
	return density.ScoreLog(m.Tables, channels, opts)
}

// Classify compares a foreground and a background probability map and marks
// each pixel where the foreground likelihood wins. Both maps must be in the
// same space (both linear or both log); the comparison is order-preserving
// either way.
func Classify(fg, bg grid.Float64) (grid.Mask, error) {
	if fg.W != bg.W || fg.H != bg.H {
		return grid.Mask{}, fmt.Errorf("foreground map %dx%d vs background map %dx%d: %w",
			fg.W, fg.H, bg.W, bg.H, density.ErrDimensionMismatch)
	}

	out := grid.NewMask(fg.W, fg.H)
	for i, v := range fg.Val {
		out.Sel[i] = v > bg.Val[i]
	}
	return out, nil
}
