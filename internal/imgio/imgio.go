// Package imgio decodes images and converts them into the channel grids and
// sample masks the density core consumes. Color-space work is delegated to
// OpenCV; file decoding goes through the standard image registry so TIFF,
// PNG, and JPEG inputs all work.
package imgio

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"gocv.io/x/gocv"

	_ "golang.org/x/image/tiff"

	"scribble-matte/pkg/grid"
)

// Load decodes an image from disk.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// ToMat converts a Go image to a gocv.Mat in BGR byte order.
func ToMat(img image.Image) gocv.Mat {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			mat.SetUCharAt(y, x*3+0, uint8(b>>8))
			mat.SetUCharAt(y, x*3+1, uint8(g>>8))
			mat.SetUCharAt(y, x*3+2, uint8(r>>8))
		}
	}
	return mat
}

// SplitLab converts an image to the Lab color space and returns the three
// channel grids (0=L, 1=a, 2=b). Lab separates luminance from chromaticity,
// which makes the per-channel marginals more informative than raw RGB.
func SplitLab(img image.Image) ([3]grid.Bytes, error) {
	mat := ToMat(img)
	defer mat.Close()
	return splitLabMat(mat)
}

// LoadLab decodes an image file straight into its three Lab channel grids.
func LoadLab(path string) ([3]grid.Bytes, error) {
	img, err := Load(path)
	if err != nil {
		return [3]grid.Bytes{}, err
	}
	return SplitLab(img)
}

func splitLabMat(mat gocv.Mat) ([3]grid.Bytes, error) {
	var out [3]grid.Bytes
	if mat.Empty() {
		return out, fmt.Errorf("empty image")
	}

	lab := gocv.NewMat()
	defer lab.Close()
	gocv.CvtColor(mat, &lab, gocv.ColorBGRToLab)

	planes := gocv.Split(lab)
	for i := range planes {
		defer planes[i].Close()
	}
	if len(planes) != 3 {
		return out, fmt.Errorf("expected 3 Lab planes, got %d", len(planes))
	}

	h, w := lab.Rows(), lab.Cols()
	for i := range planes {
		g := grid.NewBytes(w, h)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				g.Pix[y*w+x] = planes[i].GetUCharAt(y, x)
			}
		}
		out[i] = g
	}
	return out, nil
}
