// Package kernels implements the blur operators used to feather tonal masks.
package kernels

import (
	"github.com/chewxy/math32"

	"github.com/nvr-ai/go-tone/images"
)

// identityRadius is the radius below which blurring is skipped entirely.
const identityRadius = 0.1

// GaussianBlur convolves a single-channel plane with a 2D Gaussian kernel.
//
// Border handling renormalizes the weight sum over in-bounds taps only:
// pixels near the edge are averaged over the neighbors that exist instead of
// padding with zeros or mirroring. Radii below 0.1 return an unmodified copy.
func GaussianBlur(plane *images.FloatImage, radius float32) *images.FloatImage {
	if radius < identityRadius {
		return plane.Clone()
	}

	size := kernelSize(radius)
	kernel := gaussianKernel(size, radius)

	return convolve(plane, kernel, size)
}

// FastGaussianBlur approximates a wide Gaussian with repeated narrower
// passes: one pass up to radius 8, two half-radius passes up to 20, three
// third-radius passes beyond. Cost scales with kernel area, so several small
// kernels beat one large kernel for big radii; repeated Gaussian passes
// converge toward the single wide Gaussian.
func FastGaussianBlur(plane *images.FloatImage, radius float32) *images.FloatImage {
	if radius < 1.0 {
		return plane.Clone()
	}

	var passes int
	var passRadius float32

	switch {
	case radius <= 8.0:
		passes, passRadius = 1, radius
	case radius <= 20.0:
		passes, passRadius = 2, radius/2.0
	default:
		passes, passRadius = 3, radius/3.0
	}

	result := plane
	for i := 0; i < passes; i++ {
		result = GaussianBlur(result, passRadius)
	}

	return result
}

// kernelSize derives an odd kernel width of at least 3 from the radius.
func kernelSize(radius float32) int {
	size := int(radius*2+1) | 1
	if size < 3 {
		size = 3
	}
	return size
}

// gaussianKernel builds a size×size kernel with sigma equal to the radius,
// normalized to sum to 1.
func gaussianKernel(size int, sigma float32) []float32 {
	kernel := make([]float32, size*size)
	center := size / 2

	var sum float32
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float32(x - center)
			dy := float32(y - center)
			w := math32.Exp(-(dx*dx + dy*dy) / (2 * sigma * sigma))
			kernel[y*size+x] = w
			sum += w
		}
	}

	for i := range kernel {
		kernel[i] /= sum
	}

	return kernel
}

// convolve applies the kernel to each pixel, renormalizing by the weight sum
// of the taps that landed inside the plane.
func convolve(plane *images.FloatImage, kernel []float32, size int) *images.FloatImage {
	out := images.NewFloatImage(plane.Width, plane.Height, 1)
	kr := size / 2

	for y := 0; y < plane.Height; y++ {
		for x := 0; x < plane.Width; x++ {
			var sum, weightSum float32

			for ky := -kr; ky <= kr; ky++ {
				srcY := y + ky
				if srcY < 0 || srcY >= plane.Height {
					continue
				}
				for kx := -kr; kx <= kr; kx++ {
					srcX := x + kx
					if srcX < 0 || srcX >= plane.Width {
						continue
					}
					w := kernel[(ky+kr)*size+(kx+kr)]
					sum += plane.At(srcX, srcY) * w
					weightSum += w
				}
			}

			if weightSum > 0 {
				out.Set(x, y, sum/weightSum)
			} else {
				out.Set(x, y, plane.At(x, y))
			}
		}
	}

	return out
}
