package imgio

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"scribble-matte/pkg/grid"
)

// DefaultScribbleThreshold separates drawn strokes from the annotation
// background. Scribble images carry dark strokes on a light background, so
// anything at or below the threshold counts as drawn.
const DefaultScribbleThreshold = 1

// ScribbleMask binarizes a user annotation image into a sample mask. The
// annotation is converted to grayscale and inverse-thresholded: pixels at or
// below thresh are selected, everything else is not. The result is strictly
// two-valued over the full image area.
func ScribbleMask(img image.Image, thresh uint8) (grid.Mask, error) {
	mat := ToMat(img)
	defer mat.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	bin := gocv.NewMat()
	defer bin.Close()
	gocv.Threshold(gray, &bin, float32(thresh), 255, gocv.ThresholdBinaryInv)

	h, w := bin.Rows(), bin.Cols()
	mask := grid.NewMask(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			mask.Sel[y*w+x] = bin.GetUCharAt(y, x) != 0
		}
	}
	return mask, nil
}

// LoadScribble decodes a scribble annotation file and binarizes it into a
// sample mask.
func LoadScribble(path string, thresh uint8) (grid.Mask, error) {
	img, err := Load(path)
	if err != nil {
		return grid.Mask{}, fmt.Errorf("scribble %s: %w", path, err)
	}
	return ScribbleMask(img, thresh)
}
