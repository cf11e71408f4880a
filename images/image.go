// Package images - in-memory image planes for the tone correction pipeline.
//
// Two representations exist: BGRImage holds 8-bit display pixels with
// interleaved blue, green, red channels, and FloatImage holds float32 working
// data with either 3 interleaved channels (Lab) or a single channel
// (luminance or mask plane). All planes operated on together must share the
// same width and height; no function in this package reorders channels.
package images

import (
	"image"
	"image/color"
)

// BGRImage is an 8-bit color image with interleaved B, G, R channels.
type BGRImage struct {
	// Width is the image width in pixels.
	Width int `json:"width" yaml:"width"`
	// Height is the image height in pixels.
	Height int `json:"height" yaml:"height"`
	// Pix holds the pixel data as B, G, R triples, row-major.
	Pix []uint8 `json:"-" yaml:"-"`
}

// FloatImage is a float32 image with 1 or 3 interleaved channels.
type FloatImage struct {
	// Width is the image width in pixels.
	Width int
	// Height is the image height in pixels.
	Height int
	// Channels is the number of interleaved channels (1 or 3).
	Channels int
	// Pix holds the channel data, row-major, channels interleaved.
	Pix []float32
}

// NewBGRImage allocates a zeroed BGR image of the given size.
//
// Arguments:
// - width: Image width in pixels.
// - height: Image height in pixels.
//
// Returns:
// - A BGRImage with all pixels set to black.
func NewBGRImage(width, height int) *BGRImage {
	return &BGRImage{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}
}

// NewFloatImage allocates a zeroed float image with the given channel count.
//
// Arguments:
// - width: Image width in pixels.
// - height: Image height in pixels.
// - channels: Number of interleaved channels (1 or 3).
//
// Returns:
// - A FloatImage with all samples set to zero.
func NewFloatImage(width, height, channels int) *FloatImage {
	return &FloatImage{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]float32, width*height*channels),
	}
}

// Empty reports whether the image contains no pixels.
func (m *BGRImage) Empty() bool {
	return m == nil || m.Width <= 0 || m.Height <= 0 || len(m.Pix) == 0
}

// BGRAt returns the blue, green and red channel values at (x, y).
func (m *BGRImage) BGRAt(x, y int) (b, g, r uint8) {
	i := (y*m.Width + x) * 3
	return m.Pix[i], m.Pix[i+1], m.Pix[i+2]
}

// SetBGR stores blue, green and red channel values at (x, y).
func (m *BGRImage) SetBGR(x, y int, b, g, r uint8) {
	i := (y*m.Width + x) * 3
	m.Pix[i] = b
	m.Pix[i+1] = g
	m.Pix[i+2] = r
}

// Empty reports whether the plane contains no pixels.
func (m *FloatImage) Empty() bool {
	return m == nil || m.Width <= 0 || m.Height <= 0 || len(m.Pix) == 0
}

// At returns the single-channel sample at (x, y). Valid only for 1-channel planes.
func (m *FloatImage) At(x, y int) float32 {
	return m.Pix[y*m.Width+x]
}

// Set stores the single-channel sample at (x, y). Valid only for 1-channel planes.
func (m *FloatImage) Set(x, y int, v float32) {
	m.Pix[y*m.Width+x] = v
}

// VecAt returns the three interleaved channel values at (x, y).
func (m *FloatImage) VecAt(x, y int) (c0, c1, c2 float32) {
	i := (y*m.Width + x) * 3
	return m.Pix[i], m.Pix[i+1], m.Pix[i+2]
}

// SetVec stores three interleaved channel values at (x, y).
func (m *FloatImage) SetVec(x, y int, c0, c1, c2 float32) {
	i := (y*m.Width + x) * 3
	m.Pix[i] = c0
	m.Pix[i+1] = c1
	m.Pix[i+2] = c2
}

// Clone returns a deep copy of the plane.
func (m *FloatImage) Clone() *FloatImage {
	out := NewFloatImage(m.Width, m.Height, m.Channels)
	copy(out.Pix, m.Pix)
	return out
}

// Max returns the largest sample value of the plane, or 0 if all samples
// are non-positive.
func (m *FloatImage) Max() float32 {
	var max float32
	for _, v := range m.Pix {
		if v > max {
			max = v
		}
	}
	return max
}

// FromImage converts a decoded standard-library image into a BGRImage.
//
// Arguments:
// - img: Any image.Image produced by the stdlib or codec packages.
//
// Returns:
// - A BGRImage holding the same pixels with channels stored B, G, R.
func FromImage(img image.Image) *BGRImage {
	bounds := img.Bounds()
	out := NewBGRImage(bounds.Dx(), bounds.Dy())
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			out.SetBGR(x, y, uint8(b>>8), uint8(g>>8), uint8(r>>8))
		}
	}
	return out
}

// ToImage converts a BGRImage into an opaque stdlib RGBA image for encoding.
//
// Arguments:
// - m: The BGR image to convert.
//
// Returns:
// - An *image.RGBA with the same pixels in RGBA order.
func ToImage(m *BGRImage) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			b, g, r := m.BGRAt(x, y)
			out.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return out
}
