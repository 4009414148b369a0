// Command scribble-matte builds foreground and background color models from
// user scribbles and scores every pixel of the image against both, writing
// probability heat maps and a hard classification matte.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"scribble-matte/internal/density"
	"scribble-matte/internal/heatmap"
	"scribble-matte/internal/imgio"
	"scribble-matte/internal/matting"
	"scribble-matte/internal/version"
	"scribble-matte/pkg/grid"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("scribble-matte v%s", version.String())

	imagePath := flag.String("image", "", "Path to input image (TIFF, PNG, or JPEG)")
	fgPath := flag.String("fg", "", "Path to foreground scribble annotation")
	bgPath := flag.String("bg", "", "Path to background scribble annotation")
	outDir := flag.String("outdir", ".", "Directory for output images")
	smooth := flag.Bool("smooth", true, "Median-filter the channel histograms")
	window := flag.Int("window", density.DefaultWindow, "Median filter window (odd)")
	workers := flag.Int("workers", runtime.NumCPU(), "Parallel workers for estimation and scoring")
	logSpace := flag.Bool("logspace", false, "Score in log-probability space")
	scribbleThresh := flag.Uint("scribble-threshold", imgio.DefaultScribbleThreshold,
		"Max intensity of a drawn scribble pixel")
	flag.Parse()

	if *imagePath == "" || *fgPath == "" || *bgPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	channels, err := imgio.LoadLab(*imagePath)
	if err != nil {
		log.Fatalf("Failed to load image: %v", err)
	}
	log.Printf("Loaded %s: %dx%d pixels", *imagePath, channels[0].W, channels[0].H)

	thresh := uint8(*scribbleThresh)
	fgMask, err := imgio.LoadScribble(*fgPath, thresh)
	if err != nil {
		log.Fatalf("Failed to load foreground scribble: %v", err)
	}
	bgMask, err := imgio.LoadScribble(*bgPath, thresh)
	if err != nil {
		log.Fatalf("Failed to load background scribble: %v", err)
	}
	log.Printf("Scribbles: %d foreground samples, %d background samples",
		fgMask.Count(), bgMask.Count())

	estOpts := density.Options{Smooth: *smooth, Window: *window, Workers: *workers}
	fgModel, err := matting.Build(channels, fgMask, estOpts)
	if err != nil {
		log.Fatalf("Failed to build foreground model: %v", err)
	}
	bgModel, err := matting.Build(channels, bgMask, estOpts)
	if err != nil {
		log.Fatalf("Failed to build background model: %v", err)
	}

	scoreOpts := density.DefaultScoreOptions()
	scoreOpts.Workers = *workers
	score := func(m matting.Model) (grid.Float64, error) {
		if *logSpace {
			return m.ScoreLog(channels, scoreOpts)
		}
		return m.Score(channels, scoreOpts)
	}

	fgProb, err := score(fgModel)
	if err != nil {
		log.Fatalf("Failed to score foreground: %v", err)
	}
	bgProb, err := score(bgModel)
	if err != nil {
		log.Fatalf("Failed to score background: %v", err)
	}

	if err := heatmap.Write(filepath.Join(*outDir, "fg_prob.png"), fgProb); err != nil {
		log.Fatalf("Failed to write foreground heat map: %v", err)
	}
	if err := heatmap.Write(filepath.Join(*outDir, "bg_prob.png"), bgProb); err != nil {
		log.Fatalf("Failed to write background heat map: %v", err)
	}

	matte, err := matting.Classify(fgProb, bgProb)
	if err != nil {
		log.Fatalf("Failed to classify: %v", err)
	}
	if err := heatmap.WriteMask(filepath.Join(*outDir, "matte.png"), matte); err != nil {
		log.Fatalf("Failed to write matte: %v", err)
	}

	log.Printf("Wrote fg_prob.png, bg_prob.png, matte.png to %s (%d foreground pixels)",
		*outDir, matte.Count())
}
