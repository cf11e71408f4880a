// Package colorspace - fixed-illuminant sRGB(BGR) ↔ CIE Lab conversion.
//
// The conversion is color-managed for a single D65-like illuminant only; no
// ICC profile handling exists. Lab values use a storage encoding that packs
// all three channels into a byte-comparable range: L is rescaled from
// [0, 100] to [0, 255] and a/b are offset by +128. Both directions of the
// conversion apply this encoding symmetrically, so a round trip reproduces
// the source pixels within 8-bit quantization error.
package colorspace

import (
	"github.com/chewxy/math32"

	"github.com/nvr-ai/go-tone/images"
)

// D65 reference white tristimulus values.
const (
	whiteX = 0.95047
	whiteY = 1.00000
	whiteZ = 1.08883
)

// delta is the CIE Lab nonlinearity breakpoint 6/29.
const delta = 6.0 / 29.0

// BGRToLab converts an 8-bit BGR image into a float Lab image in storage
// encoding.
//
// Arguments:
// - bgr: The source image; must have interleaved B, G, R channels.
//
// Returns:
// - A 3-channel float image holding L, a, b per pixel.
func BGRToLab(bgr *images.BGRImage) *images.FloatImage {
	lab := images.NewFloatImage(bgr.Width, bgr.Height, 3)

	for y := 0; y < bgr.Height; y++ {
		for x := 0; x < bgr.Width; x++ {
			bv, gv, rv := bgr.BGRAt(x, y)

			xr, yr, zr := rgbToXYZ(float32(rv)/255.0, float32(gv)/255.0, float32(bv)/255.0)
			l, a, b := xyzToLab(xr, yr, zr)

			lab.SetVec(x, y, l, a, b)
		}
	}

	return lab
}

// LabToBGR converts a float Lab image in storage encoding back into an
// 8-bit BGR image, clamping each channel independently to [0, 255].
//
// Arguments:
// - lab: The source 3-channel Lab image.
//
// Returns:
// - The reconstructed BGR image.
func LabToBGR(lab *images.FloatImage) *images.BGRImage {
	bgr := images.NewBGRImage(lab.Width, lab.Height)

	for y := 0; y < lab.Height; y++ {
		for x := 0; x < lab.Width; x++ {
			l, a, b := lab.VecAt(x, y)

			xr, yr, zr := labToXYZ(l, a, b)
			rv, gv, bv := xyzToRGB(xr, yr, zr)

			bgr.SetBGR(x, y, saturateByte(bv*255), saturateByte(gv*255), saturateByte(rv*255))
		}
	}

	return bgr
}

// rgbToXYZ linearizes gamma-encoded sRGB channels and projects them into
// XYZ, normalized by the D65 white point.
func rgbToXYZ(r, g, b float32) (x, y, z float32) {
	r = srgbToLinear(r)
	g = srgbToLinear(g)
	b = srgbToLinear(b)

	x = r*0.4124564 + g*0.3575761 + b*0.1804375
	y = r*0.2126729 + g*0.7151522 + b*0.0721750
	z = r*0.0193339 + g*0.1191920 + b*0.9503041

	return x / whiteX, y / whiteY, z / whiteZ
}

// xyzToLab applies the Lab nonlinearity to white-normalized XYZ and emits
// channels in storage encoding.
func xyzToLab(x, y, z float32) (l, a, b float32) {
	fx := labF(x)
	fy := labF(y)
	fz := labF(z)

	l = 116.0*fy - 16.0
	a = 500.0 * (fx - fy)
	b = 200.0 * (fy - fz)

	// Storage encoding: L in [0, 255], a/b offset to positive range.
	return l * 255.0 / 100.0, a + 128.0, b + 128.0
}

// labToXYZ undoes the storage encoding and the Lab nonlinearity, returning
// white-normalized XYZ (the inverse of what xyzToLab consumes).
func labToXYZ(l, a, b float32) (x, y, z float32) {
	l = l * 100.0 / 255.0
	a -= 128.0
	b -= 128.0

	fy := (l + 16.0) / 116.0
	fx := fy + a/500.0
	fz := fy - b/200.0

	return labFInv(fx), labFInv(fy), labFInv(fz)
}

// xyzToRGB projects white-normalized XYZ back to gamma-encoded sRGB, with
// each channel clamped to [0, 1].
func xyzToRGB(x, y, z float32) (r, g, b float32) {
	x *= whiteX
	y *= whiteY
	z *= whiteZ

	r = x*3.2404542 + y*-1.5371385 + z*-0.4985314
	g = x*-0.9692660 + y*1.8760108 + z*0.0415560
	b = x*0.0556434 + y*-0.2040259 + z*1.0572252

	return clamp01(linearToSRGB(r)), clamp01(linearToSRGB(g)), clamp01(linearToSRGB(b))
}

// srgbToLinear inverts the sRGB transfer function for one channel in [0, 1].
func srgbToLinear(c float32) float32 {
	if c > 0.04045 {
		return math32.Pow((c+0.055)/1.055, 2.4)
	}
	return c / 12.92
}

// linearToSRGB applies the forward sRGB transfer function for one channel.
func linearToSRGB(c float32) float32 {
	if c > 0.0031308 {
		return 1.055*math32.Pow(c, 1.0/2.4) - 0.055
	}
	return 12.92 * c
}

// labF is the CIE nonlinearity f(t) with the linear toe below (6/29)³.
func labF(t float32) float32 {
	if t > delta*delta*delta {
		return math32.Cbrt(t)
	}
	return t/(3*delta*delta) + 4.0/29.0
}

// labFInv inverts labF.
func labFInv(t float32) float32 {
	if t > delta {
		return t * t * t
	}
	return 3 * delta * delta * (t - 4.0/29.0)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// saturateByte truncates to int and clamps to the representable byte range.
func saturateByte(v float32) uint8 {
	i := int(v)
	if i < 0 {
		return 0
	}
	if i > 255 {
		return 255
	}
	return uint8(i)
}
