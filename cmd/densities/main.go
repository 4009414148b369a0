// Command densities exports the foreground/background per-channel density
// tables for an image and its scribble annotations, both as tab-separated
// dumps for external plotting and as rendered PNG curve plots.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"scribble-matte/internal/density"
	"scribble-matte/internal/imgio"
	"scribble-matte/internal/matting"
	"scribble-matte/pkg/grid"
)

var channelNames = [3]string{"L", "a", "b"}

func main() {
	imagePath := flag.String("image", "", "Path to input image (TIFF, PNG, or JPEG)")
	fgPath := flag.String("fg", "", "Path to foreground scribble annotation")
	bgPath := flag.String("bg", "", "Path to background scribble annotation")
	outDir := flag.String("outdir", ".", "Directory for TSV dumps and plots")
	window := flag.Int("window", density.DefaultWindow, "Median filter window (odd)")
	plotCurves := flag.Bool("plot", true, "Render PNG density curves per channel")
	flag.Parse()

	if *imagePath == "" || *fgPath == "" || *bgPath == "" {
		fmt.Println("Usage: densities -image <path> -fg <scribble> -bg <scribble> [-outdir .] [-window 5] [-plot]")
		os.Exit(1)
	}

	channels, err := imgio.LoadLab(*imagePath)
	if err != nil {
		fail("Failed to load image: %v", err)
	}
	fgMask, err := imgio.LoadScribble(*fgPath, imgio.DefaultScribbleThreshold)
	if err != nil {
		fail("Failed to load foreground scribble: %v", err)
	}
	bgMask, err := imgio.LoadScribble(*bgPath, imgio.DefaultScribbleThreshold)
	if err != nil {
		fail("Failed to load background scribble: %v", err)
	}

	// One dump per smoothing mode, so the effect of the median filter can
	// be compared side by side.
	for _, mode := range []struct {
		name   string
		smooth bool
	}{
		{"densities_nomedfilter.txt", false},
		{"densities_medfilter.txt", true},
	} {
		opts := density.Options{Smooth: mode.smooth, Window: *window, Workers: 1}
		fg, bg, err := buildBoth(channels, fgMask, bgMask, opts)
		if err != nil {
			fail("Failed to estimate densities: %v", err)
		}

		path := filepath.Join(*outDir, mode.name)
		if err := writeTSV(path, fg, bg); err != nil {
			fail("Failed to write %s: %v", path, err)
		}
		fmt.Printf("Wrote %s\n", path)

		if *plotCurves {
			for c := 0; c < 3; c++ {
				name := fmt.Sprintf("density_%s_%s.png", channelNames[c], suffix(mode.smooth))
				path := filepath.Join(*outDir, name)
				if err := plotChannel(path, channelNames[c], fg[c], bg[c]); err != nil {
					fail("Failed to plot %s: %v", path, err)
				}
				fmt.Printf("Wrote %s\n", path)
			}
		}
	}
}

func buildBoth(channels [3]grid.Bytes, fgMask, bgMask grid.Mask, opts density.Options) (fg, bg [3]density.Table, err error) {
	fgModel, err := matting.Build(channels, fgMask, opts)
	if err != nil {
		return fg, bg, fmt.Errorf("foreground: %w", err)
	}
	bgModel, err := matting.Build(channels, bgMask, opts)
	if err != nil {
		return fg, bg, fmt.Errorf("background: %w", err)
	}
	return fgModel.Tables, bgModel.Tables, nil
}

func writeTSV(path string, fg, bg [3]density.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return density.WriteDensitiesTSV(f, fg, bg)
}

// plotChannel renders the foreground and background density curves of one
// channel into a single PNG.
func plotChannel(path, channel string, fg, bg density.Table) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Channel %s density", channel)
	p.X.Label.Text = "Intensity"
	p.Y.Label.Text = "Probability"

	fgLine, err := plotter.NewLine(tableXYs(fg))
	if err != nil {
		return err
	}
	fgLine.Color = color.RGBA{B: 255, A: 255}

	bgLine, err := plotter.NewLine(tableXYs(bg))
	if err != nil {
		return err
	}
	bgLine.Color = color.RGBA{R: 255, A: 255}

	p.Add(fgLine, bgLine)
	p.Legend.Add("foreground", fgLine)
	p.Legend.Add("background", bgLine)

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

func tableXYs(t density.Table) plotter.XYs {
	xys := make(plotter.XYs, density.Levels)
	for i, v := range t {
		xys[i].X = float64(i)
		xys[i].Y = v
	}
	return xys
}

func suffix(smooth bool) string {
	if smooth {
		return "medfilter"
	}
	return "nomedfilter"
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
