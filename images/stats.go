package images

// Brightness returns the perceived brightness of an 8-bit B, G, R triple
// using the Rec. 601 luma weights.
func Brightness(b, g, r uint8) float32 {
	return 0.299*float32(r) + 0.587*float32(g) + 0.114*float32(b)
}

// LuminanceStats summarizes the brightness distribution of an image.
type LuminanceStats struct {
	// Mean is the average brightness over all pixels.
	Mean float32 `json:"mean"`
	// Min is the darkest pixel brightness.
	Min float32 `json:"min"`
	// Max is the brightest pixel brightness.
	Max float32 `json:"max"`
}

// Stats computes the brightness statistics of a BGR image.
//
// Arguments:
// - img: The image to analyze.
//
// Returns:
//   - Mean, minimum and maximum Rec. 601 brightness. Zero-valued stats for an
//     empty image.
func Stats(img *BGRImage) LuminanceStats {
	if img.Empty() {
		return LuminanceStats{}
	}

	stats := LuminanceStats{Min: 255}
	var sum float64

	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			v := Brightness(img.BGRAt(x, y))
			sum += float64(v)
			if v < stats.Min {
				stats.Min = v
			}
			if v > stats.Max {
				stats.Max = v
			}
		}
	}

	stats.Mean = float32(sum / float64(img.Width*img.Height))
	return stats
}

// PixelSample captures one pixel before and after correction for reporting.
type PixelSample struct {
	// X, Y are the sampled coordinates.
	X int `json:"x"`
	Y int `json:"y"`
	// Before holds the original B, G, R values.
	Before [3]uint8 `json:"before"`
	// After holds the corrected B, G, R values.
	After [3]uint8 `json:"after"`
	// BrightnessDelta is the brightness change at this pixel.
	BrightnessDelta float32 `json:"brightness_delta"`
}

// SamplePixels compares the same coordinates in two images of equal size.
// Points outside the image bounds are skipped.
//
// Arguments:
// - before: The original image.
// - after: The corrected image.
// - points: Coordinate pairs to sample, as {x, y}.
//
// Returns:
// - One PixelSample per in-bounds point.
func SamplePixels(before, after *BGRImage, points [][2]int) []PixelSample {
	samples := make([]PixelSample, 0, len(points))

	for _, pt := range points {
		x, y := pt[0], pt[1]
		if x < 0 || x >= before.Width || y < 0 || y >= before.Height {
			continue
		}

		ob, og, or := before.BGRAt(x, y)
		ab, ag, ar := after.BGRAt(x, y)

		samples = append(samples, PixelSample{
			X:               x,
			Y:               y,
			Before:          [3]uint8{ob, og, or},
			After:           [3]uint8{ab, ag, ar},
			BrightnessDelta: Brightness(ab, ag, ar) - Brightness(ob, og, or),
		})
	}

	return samples
}
