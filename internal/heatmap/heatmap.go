// Package heatmap renders probability maps as pseudocolor images for
// inspection. The map is rescaled to the full 8-bit range and run through
// OpenCV's jet colormap, matlab-imagesc style.
package heatmap

import (
	"fmt"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/floats"

	"scribble-matte/pkg/grid"
)

// Rescale maps a probability map linearly onto 0-255, min to 0 and max to
// 255. A constant map (max == min) rescales to all zeros.
func Rescale(pm grid.Float64) grid.Bytes {
	out := grid.NewBytes(pm.W, pm.H)
	if len(pm.Val) == 0 {
		return out
	}

	lo := floats.Min(pm.Val)
	hi := floats.Max(pm.Val)
	if hi == lo {
		return out
	}

	scale := 255.0 / (hi - lo)
	for i, v := range pm.Val {
		out.Pix[i] = uint8((v - lo) * scale)
	}
	return out
}

// Render produces a jet-colormapped BGR image of the probability map. The
// caller owns (and must Close) the returned Mat.
func Render(pm grid.Float64) (gocv.Mat, error) {
	if pm.W <= 0 || pm.H <= 0 {
		return gocv.NewMat(), fmt.Errorf("empty probability map")
	}

	scaled := Rescale(pm)
	gray := gocv.NewMatWithSize(pm.H, pm.W, gocv.MatTypeCV8U)
	defer gray.Close()
	for y := 0; y < pm.H; y++ {
		for x := 0; x < pm.W; x++ {
			gray.SetUCharAt(y, x, scaled.Pix[y*pm.W+x])
		}
	}

	colored := gocv.NewMat()
	gocv.ApplyColorMap(gray, &colored, gocv.ColormapJet)
	return colored, nil
}

// Write renders the probability map and saves it to path. The format is
// chosen from the file extension by OpenCV.
func Write(path string, pm grid.Float64) error {
	colored, err := Render(pm)
	if err != nil {
		return err
	}
	defer colored.Close()

	if ok := gocv.IMWrite(path, colored); !ok {
		return fmt.Errorf("failed to write heatmap %s", path)
	}
	return nil
}

// WriteMask saves a binary mask as a black-and-white image, selected pixels
// white.
func WriteMask(path string, m grid.Mask) error {
	if m.W <= 0 || m.H <= 0 {
		return fmt.Errorf("empty mask")
	}

	mat := gocv.NewMatWithSize(m.H, m.W, gocv.MatTypeCV8U)
	defer mat.Close()
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			if m.Sel[y*m.W+x] {
				mat.SetUCharAt(y, x, 255)
			}
		}
	}

	if ok := gocv.IMWrite(path, mat); !ok {
		return fmt.Errorf("failed to write mask %s", path)
	}
	return nil
}
