package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/nvr-ai/go-tone/images"
	"github.com/nvr-ai/go-tone/tone"
	"github.com/nvr-ai/go-tone/util"
)

const (
	// DefaultOutputDir is where corrected images and the mosaic are written.
	DefaultOutputDir = "results"
	// Mosaic cell size for the comparison grid.
	mosaicTileWidth  = 600
	mosaicTileHeight = 400
	mosaicColumns    = 2
)

func main() {
	var (
		imagePath   string
		outputDir   string
		presetsPath string
		optimalOnly bool
	)
	flag.StringVar(&imagePath, "image", "", "Path to input image (.jpg, .jpeg, .png, .webp, .bmp)")
	flag.StringVar(&outputDir, "output-dir", DefaultOutputDir, "Output directory for corrected images")
	flag.StringVar(&presetsPath, "presets", "", "Optional JSON file with correction presets")
	flag.BoolVar(&optimalOnly, "optimal", false, "Run only the tuned optimal preset")
	flag.Parse()

	if imagePath == "" {
		log.Fatal("missing required -image flag")
	}

	original, err := util.LoadImageFile(imagePath)
	if err != nil {
		log.Fatal(err)
	}

	analyzeImage(original, imagePath)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	presets, err := selectPresets(presetsPath, optimalOnly)
	if err != nil {
		log.Fatal(err)
	}

	results := make([]*images.BGRImage, 0, len(presets))
	for i, preset := range presets {
		filter := preset.Filter()
		fmt.Printf("\n%d. %s\n   %s\n", i+1, preset.Description, filter.Settings())

		start := time.Now()
		corrected, applyErr := filter.Apply(original)
		if applyErr != nil {
			log.Fatalf("correction failed for preset %s: %v", preset.Name, applyErr)
		}
		fmt.Printf("   Processed %dx%d pixels in %v\n", original.Width, original.Height, time.Since(start))

		outPath := filepath.Join(outputDir, fmt.Sprintf("result_%s.jpg", preset.Name))
		if saveErr := util.SaveImageFile(outPath, corrected); saveErr != nil {
			log.Fatal(saveErr)
		}
		fmt.Printf("   Saved to %s\n", outPath)

		results = append(results, corrected)
	}

	analyzePixels(original, results[len(results)-1])

	if len(results) > 1 {
		mosaicPath := filepath.Join(outputDir, "comparison.jpg")
		if err := saveMosaic(mosaicPath, original, presets, results); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("\nComparison mosaic saved to %s\n", mosaicPath)
	}
}

// selectPresets resolves which preset list to run: a user-supplied JSON
// file, the single optimal preset, or the built-in comparison set.
func selectPresets(presetsPath string, optimalOnly bool) ([]tone.Preset, error) {
	if presetsPath != "" {
		return tone.LoadPresets(presetsPath)
	}
	if optimalOnly {
		return []tone.Preset{tone.OptimalPreset()}, nil
	}
	return tone.ComparisonPresets(), nil
}

// analyzeImage prints basic geometry, brightness statistics and a few
// sample pixels of the loaded image.
func analyzeImage(img *images.BGRImage, path string) {
	fmt.Printf("Image loaded from path: %s\n", path)
	fmt.Printf("Size: %dx%d\nChannels: 3\nSize in bytes: %d\n", img.Width, img.Height, len(img.Pix))

	stats := images.Stats(img)
	fmt.Printf("Brightness: mean=%.1f min=%.1f max=%.1f\n", stats.Mean, stats.Min, stats.Max)

	fmt.Println("\nSample pixels:")
	for y := 0; y < min(3, img.Height); y++ {
		for x := 0; x < min(3, img.Width); x++ {
			b, g, r := img.BGRAt(x, y)
			fmt.Printf("Pixel(%d,%d): B=%d, G=%d, R=%d\n", x, y, b, g, r)
		}
	}
}

// analyzePixels reports before/after values and brightness change at a few
// fixed probe points.
func analyzePixels(original, result *images.BGRImage) {
	probes := [][2]int{{100, 100}, {50, 200}, {400, 250}}

	fmt.Println("\nPixel analysis:")
	for _, s := range images.SamplePixels(original, result, probes) {
		fmt.Printf("Pixel (%d, %d):\n", s.X, s.Y)
		fmt.Printf("  Original: B=%d, G=%d, R=%d\n", s.Before[0], s.Before[1], s.Before[2])
		fmt.Printf("  Result:   B=%d, G=%d, R=%d\n", s.After[0], s.After[1], s.After[2])
		fmt.Printf("  Brightness change: %+.1f\n", s.BrightnessDelta)
	}
}

// saveMosaic composes the original plus all results into a labelled grid.
func saveMosaic(path string, original *images.BGRImage, presets []tone.Preset, results []*images.BGRImage) error {
	tiles := make([]images.Tile, 0, len(results)+1)
	tiles = append(tiles, images.Tile{Label: "Original", Image: original})
	for i, result := range results {
		tiles = append(tiles, images.Tile{Label: presets[i].Description, Image: result})
	}

	mosaic := images.Mosaic(tiles, mosaicTileWidth, mosaicTileHeight, mosaicColumns)
	return util.SaveImageFile(path, mosaic)
}
