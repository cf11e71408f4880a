package tone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-tone/images"
)

func uniformImage(w, h int, b, g, r uint8) *images.BGRImage {
	img := images.NewBGRImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetBGR(x, y, b, g, r)
		}
	}
	return img
}

func meanBrightness(img *images.BGRImage) float32 {
	return images.Stats(img).Mean
}

// TestConstructorClampsParameters verifies out-of-range construction values
// are clamped, not rejected.
func TestConstructorClampsParameters(t *testing.T) {
	f := NewShadowHighlightFilter(-1, 2, 5, 1000)
	s := f.Settings()

	assert.Equal(t, float32(0), s.ShadowAmount, "shadow amount clamps to 0")
	assert.Equal(t, float32(1), s.HighlightAmount, "highlight amount clamps to 1")
	assert.Equal(t, float32(1), s.TonalWidth, "tonal width clamps to 1")
	assert.Equal(t, float32(50), s.BlurRadius, "blur radius clamps to 50")
}

// TestSettersClampParameters verifies each mutator applies the same clamping
// as the constructor.
func TestSettersClampParameters(t *testing.T) {
	f := NewDefaultFilter()

	f.SetShadowAmount(2)
	f.SetHighlightAmount(-1)
	f.SetTonalWidth(5)
	f.SetBlurRadius(-3)

	s := f.Settings()
	assert.Equal(t, float32(1), s.ShadowAmount)
	assert.Equal(t, float32(0), s.HighlightAmount)
	assert.Equal(t, float32(1), s.TonalWidth)
	assert.Equal(t, float32(0), s.BlurRadius)
}

// TestDefaultFilterSettings verifies the documented default preset.
func TestDefaultFilterSettings(t *testing.T) {
	s := NewDefaultFilter().Settings()
	assert.Equal(t, Settings{ShadowAmount: 0.3, HighlightAmount: 0.3, TonalWidth: 0.5, BlurRadius: 15}, s)
}

// TestApplyRejectsEmptyImage verifies the invalid-input contract.
func TestApplyRejectsEmptyImage(t *testing.T) {
	f := NewDefaultFilter()

	out, err := f.Apply(images.NewBGRImage(0, 0))
	assert.ErrorIs(t, err, ErrEmptyImage, "zero-size input must fail")
	assert.Nil(t, out, "no output image on error")

	out, err = f.Apply(nil)
	assert.ErrorIs(t, err, ErrEmptyImage, "nil input must fail")
	assert.Nil(t, out)
}

// TestNoOpCorrection verifies zero amounts reduce Apply to the color-space
// round trip, within quantization tolerance.
func TestNoOpCorrection(t *testing.T) {
	src := images.NewBGRImage(16, 16)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			src.SetBGR(x, y, uint8(x*16), uint8(y*16), uint8((x*y)%256))
		}
	}

	f := NewShadowHighlightFilter(0, 0, 0.5, 15)
	out, err := f.Apply(src)
	require.NoError(t, err)

	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			sb, sg, sr := src.BGRAt(x, y)
			ob, og, or := out.BGRAt(x, y)
			assert.InDelta(t, int(sb), int(ob), 1, "blue at (%d,%d)", x, y)
			assert.InDelta(t, int(sg), int(og), 1, "green at (%d,%d)", x, y)
			assert.InDelta(t, int(sr), int(or), 1, "red at (%d,%d)", x, y)
		}
	}
}

// TestMonotonicShadowLift verifies that raising the shadow amount strictly
// raises the brightness of a uniformly dark image.
func TestMonotonicShadowLift(t *testing.T) {
	src := uniformImage(8, 8, 30, 30, 30)

	weak := NewShadowHighlightFilter(0.1, 0, 0.5, 15)
	strong := NewShadowHighlightFilter(0.7, 0, 0.5, 15)

	weakOut, err := weak.Apply(src)
	require.NoError(t, err)
	strongOut, err := strong.Apply(src)
	require.NoError(t, err)

	original := meanBrightness(src)
	lifted := meanBrightness(weakOut)
	liftedMore := meanBrightness(strongOut)

	assert.Greater(t, lifted, original, "a 10%% lift must brighten dark pixels")
	assert.Greater(t, liftedMore, lifted, "a 70%% lift must brighten more than a 10%% lift")
}

// TestHighlightDarkening verifies the symmetric behavior on a bright image.
func TestHighlightDarkening(t *testing.T) {
	src := uniformImage(8, 8, 230, 230, 230)

	f := NewShadowHighlightFilter(0, 0.5, 0.5, 15)
	out, err := f.Apply(src)
	require.NoError(t, err)

	assert.Less(t, meanBrightness(out), meanBrightness(src), "highlight correction must darken bright pixels")
}

// TestShadowLiftPreservesMidtones verifies a midtone-gray image is left
// nearly untouched by a shadows-only correction with moderate width.
func TestShadowLiftPreservesMidtones(t *testing.T) {
	src := uniformImage(8, 8, 128, 128, 128)

	f := NewShadowHighlightFilter(0.5, 0, 0.5, 15)
	out, err := f.Apply(src)
	require.NoError(t, err)

	assert.InDelta(t, meanBrightness(src), meanBrightness(out), 1.5,
		"midtones sit above the shadow threshold and must not shift")
}

// TestMaskBoundedness verifies mask values stay in [0, 1] across tonal
// widths and blur radii.
func TestMaskBoundedness(t *testing.T) {
	luminance := images.NewFloatImage(16, 16, 1)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			luminance.Set(x, y, float32(y*16+x)/255.0)
		}
	}

	for _, width := range []float32{0, 0.25, 0.5, 1} {
		for _, radius := range []float32{0, 5, 25, 50} {
			f := NewShadowHighlightFilter(0.5, 0.5, width, radius)

			for name, mask := range map[string]*images.FloatImage{
				"shadow":    f.shadowMask(luminance),
				"highlight": f.highlightMask(luminance),
			} {
				for i, v := range mask.Pix {
					require.GreaterOrEqual(t, v, float32(0.0),
						"%s mask width=%v radius=%v index %d", name, width, radius, i)
					require.LessOrEqual(t, v, float32(1.0)+1e-5,
						"%s mask width=%v radius=%v index %d", name, width, radius, i)
				}
			}
		}
	}
}

// TestMaskRenormalizationHitsOne verifies a non-empty mask peaks at exactly 1
// after blur and renormalization.
func TestMaskRenormalizationHitsOne(t *testing.T) {
	luminance := images.NewFloatImage(8, 8, 1)
	// A dark pocket in an otherwise bright plane.
	for i := range luminance.Pix {
		luminance.Pix[i] = 0.9
	}
	luminance.Set(4, 4, 0.02)

	f := NewShadowHighlightFilter(0.5, 0, 0.5, 10)
	mask := f.shadowMask(luminance)

	assert.InDelta(t, 1.0, mask.Max(), 1e-5, "strongest mask pixel must renormalize to 1")
}

// TestZeroMaskSkipsRenormalization verifies an image with no shadow pixels
// produces an all-zero mask rather than dividing by zero.
func TestZeroMaskSkipsRenormalization(t *testing.T) {
	luminance := images.NewFloatImage(8, 8, 1)
	for i := range luminance.Pix {
		luminance.Pix[i] = 0.9
	}

	f := NewShadowHighlightFilter(0.5, 0, 0.5, 10)
	mask := f.shadowMask(luminance)

	for i, v := range mask.Pix {
		require.Equal(t, float32(0), v, "mask must stay all-zero at index %d", i)
	}
}

// TestApplyDoesNotMutateInput verifies the source image is untouched.
func TestApplyDoesNotMutateInput(t *testing.T) {
	src := uniformImage(8, 8, 30, 60, 90)
	before := make([]uint8, len(src.Pix))
	copy(before, src.Pix)

	_, err := NewDefaultFilter().Apply(src)
	require.NoError(t, err)
	assert.Equal(t, before, src.Pix, "Apply must not modify its input")
}

// TestSettingsString verifies the diagnostic report format.
func TestSettingsString(t *testing.T) {
	s := Settings{ShadowAmount: 0.3, HighlightAmount: 0.2, TonalWidth: 0.5, BlurRadius: 15}
	assert.Equal(t,
		"Shadow Amount: 30%, Highlight Amount: 20%, Tonal Width: 0.50, Blur Radius: 15.0 px",
		s.String())
}
