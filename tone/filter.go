// Package tone - shadow and highlight correction for still images.
//
// The filter implements the classic photographic Shadows/Highlights
// adjustment: the image is moved into Lab, the luminance channel is isolated
// and normalized, smooth tonal masks select the shadow and highlight zones,
// and a masked, damped correction relights those zones before the image is
// recomposed. Chromaticity channels pass through untouched, so color balance
// is preserved.
package tone

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-tone/colorspace"
	"github.com/nvr-ai/go-tone/images"
	"github.com/nvr-ai/go-tone/kernels"
)

// ErrEmptyImage indicates Apply was called with an image containing no pixels.
var ErrEmptyImage = errors.New("input image is empty")

// Parameter ranges.
const (
	// MaxBlurRadius is the largest accepted mask blur radius.
	MaxBlurRadius = 50.0
)

// Named correction constants. Earlier revisions carried these as inline
// literals that drifted between copies; one consistent set is fixed here.
const (
	// dampingFactor bounds how much of the theoretical full correction is
	// applied per pixel.
	dampingFactor = 0.3
	// contrastMargin keeps the corrected luminance inside
	// [lum*margin, 1-(1-lum)*margin] so local contrast never collapses.
	contrastMargin = 0.5

	// shadowThresholdFraction scales tonal width into the shadow threshold.
	shadowThresholdFraction = 0.4
	// shadowCoreFraction marks the fully-shadowed zone below the threshold.
	shadowCoreFraction = 0.6
	// shadowFalloffDepth is how far the linear ramp drops across the
	// transition zone (mask falls from 1.0 to 1-shadowFalloffDepth).
	shadowFalloffDepth = 0.5
	// shadowBlurBoost widens the shadow mask blur relative to the
	// configured radius.
	shadowBlurBoost = 1.5

	// highlightThresholdFraction scales tonal width into the highlight
	// threshold, measured down from full luminance.
	highlightThresholdFraction = 0.5
	// highlightKneeFraction marks where the highlight ramp starts, as a
	// fraction of the threshold.
	highlightKneeFraction = 0.9

	// maxMaskBlurRadius caps the effective mask blur radius.
	maxMaskBlurRadius = 20.0
)

// Settings is a snapshot of the filter's current parameters, suitable for
// logging or persistence.
type Settings struct {
	// ShadowAmount is the shadow lightening strength in [0, 1].
	ShadowAmount float32 `json:"shadow_amount" yaml:"shadow_amount"`
	// HighlightAmount is the highlight darkening strength in [0, 1].
	HighlightAmount float32 `json:"highlight_amount" yaml:"highlight_amount"`
	// TonalWidth is the width of the affected tonal zones in [0, 1].
	TonalWidth float32 `json:"tonal_width" yaml:"tonal_width"`
	// BlurRadius is the mask feathering radius in pixels, in [0, 50].
	BlurRadius float32 `json:"blur_radius" yaml:"blur_radius"`
}

// String formats the settings the way the interactive harness reports them.
func (s Settings) String() string {
	return fmt.Sprintf(
		"Shadow Amount: %.0f%%, Highlight Amount: %.0f%%, Tonal Width: %.2f, Blur Radius: %.1f px",
		s.ShadowAmount*100, s.HighlightAmount*100, s.TonalWidth, s.BlurRadius,
	)
}

// ShadowHighlightFilter corrects shadows and highlights of a BGR image.
//
// A filter instance holds only its four clamped parameters; no image data is
// retained between calls. Concurrent calls to setters and Apply on the same
// instance must be serialized by the caller.
type ShadowHighlightFilter struct {
	shadowAmount    float32
	highlightAmount float32
	tonalWidth      float32
	blurRadius      float32
}

// NewShadowHighlightFilter creates a filter, clamping each parameter to its
// valid range.
//
// Arguments:
// - shadows: Shadow lightening strength, clamped to [0, 1].
// - highlights: Highlight darkening strength, clamped to [0, 1].
// - width: Tonal width, clamped to [0, 1].
// - radius: Mask blur radius in pixels, clamped to [0, 50].
//
// Returns:
// - A ready-to-use filter.
//
// Example:
//
//	filter := tone.NewShadowHighlightFilter(0.3, 0.3, 0.5, 15)
//	corrected, err := filter.Apply(img)
func NewShadowHighlightFilter(shadows, highlights, width, radius float32) *ShadowHighlightFilter {
	return &ShadowHighlightFilter{
		shadowAmount:    clamp(shadows, 0, 1),
		highlightAmount: clamp(highlights, 0, 1),
		tonalWidth:      clamp(width, 0, 1),
		blurRadius:      clamp(radius, 0, MaxBlurRadius),
	}
}

// NewDefaultFilter creates a filter with the standard preset
// (30% shadows, 30% highlights, 0.5 tonal width, 15 px blur).
func NewDefaultFilter() *ShadowHighlightFilter {
	return NewShadowHighlightFilter(0.3, 0.3, 0.5, 15.0)
}

// SetShadowAmount sets the shadow lightening strength, clamped to [0, 1].
func (f *ShadowHighlightFilter) SetShadowAmount(amount float32) {
	f.shadowAmount = clamp(amount, 0, 1)
}

// SetHighlightAmount sets the highlight darkening strength, clamped to [0, 1].
func (f *ShadowHighlightFilter) SetHighlightAmount(amount float32) {
	f.highlightAmount = clamp(amount, 0, 1)
}

// SetTonalWidth sets the tonal width, clamped to [0, 1].
func (f *ShadowHighlightFilter) SetTonalWidth(width float32) {
	f.tonalWidth = clamp(width, 0, 1)
}

// SetBlurRadius sets the mask blur radius, clamped to [0, 50].
func (f *ShadowHighlightFilter) SetBlurRadius(radius float32) {
	f.blurRadius = clamp(radius, 0, MaxBlurRadius)
}

// Settings returns a snapshot of the current parameter values.
func (f *ShadowHighlightFilter) Settings() Settings {
	return Settings{
		ShadowAmount:    f.shadowAmount,
		HighlightAmount: f.highlightAmount,
		TonalWidth:      f.tonalWidth,
		BlurRadius:      f.blurRadius,
	}
}

// Apply runs the full correction pipeline on a BGR image and returns a new
// corrected BGR image. The input is never modified.
//
// Arguments:
// - img: The source BGR image.
//
// Returns:
// - The corrected image.
// - ErrEmptyImage if the input contains no pixels.
func (f *ShadowHighlightFilter) Apply(img *images.BGRImage) (*images.BGRImage, error) {
	if img.Empty() {
		return nil, ErrEmptyImage
	}

	lab := colorspace.BGRToLab(img)

	planes, err := images.SplitLab(lab)
	if err != nil {
		return nil, errors.Wrap(err, "splitting lab channels")
	}

	luminance := normalizeLuminance(planes[0])

	shadowMask := f.shadowMask(luminance)
	highlightMask := f.highlightMask(luminance)

	corrected := f.correctLuminance(luminance, shadowMask, highlightMask)

	planes[0] = denormalizeLuminance(corrected)

	merged, err := images.MergeLab(planes)
	if err != nil {
		return nil, errors.Wrap(err, "merging lab channels")
	}

	return colorspace.LabToBGR(merged), nil
}

// normalizeLuminance rescales an L plane from storage range [0, 255] to [0, 1].
func normalizeLuminance(l *images.FloatImage) *images.FloatImage {
	out := images.NewFloatImage(l.Width, l.Height, 1)
	for i, v := range l.Pix {
		out.Pix[i] = v / 255.0
	}
	return out
}

// denormalizeLuminance rescales a [0, 1] luminance plane back to [0, 255].
func denormalizeLuminance(l *images.FloatImage) *images.FloatImage {
	out := images.NewFloatImage(l.Width, l.Height, 1)
	for i, v := range l.Pix {
		out.Pix[i] = v * 255.0
	}
	return out
}

// correctLuminance applies the masked, damped correction to each pixel:
//
//	corrected = lum + shadowAmount·s·(1−lum)·K − highlightAmount·h·lum·K
//
// then clamps the result into [lum·C, 1−(1−lum)·C] so the correction can
// neither flatten nor invert the local tonal relationships.
func (f *ShadowHighlightFilter) correctLuminance(luminance, shadowMask, highlightMask *images.FloatImage) *images.FloatImage {
	out := images.NewFloatImage(luminance.Width, luminance.Height, 1)

	for i, lum := range luminance.Pix {
		shadowLift := f.shadowAmount * shadowMask.Pix[i] * (1.0 - lum) * dampingFactor
		highlightCut := f.highlightAmount * highlightMask.Pix[i] * lum * dampingFactor

		corrected := lum + shadowLift - highlightCut

		low := lum * contrastMargin
		high := 1.0 - (1.0-lum)*contrastMargin

		out.Pix[i] = clamp(corrected, low, high)
	}

	return out
}

// shadowMask builds the smoothed shadow-zone mask from normalized luminance.
//
// Pixels at or below shadowCoreFraction of the threshold are fully selected;
// the transition zone ramps linearly from 1.0 down to 0.5 at the threshold;
// everything brighter is unselected. The mask is then feathered with a
// widened blur and renormalized so its strongest pixel is exactly 1.
func (f *ShadowHighlightFilter) shadowMask(luminance *images.FloatImage) *images.FloatImage {
	threshold := shadowThresholdFraction * f.tonalWidth
	core := threshold * shadowCoreFraction

	mask := images.NewFloatImage(luminance.Width, luminance.Height, 1)
	for i, lum := range luminance.Pix {
		switch {
		case lum <= core:
			mask.Pix[i] = 1.0
		case lum <= threshold:
			t := (lum - core) / (threshold - core)
			mask.Pix[i] = 1.0 - t*shadowFalloffDepth
		default:
			mask.Pix[i] = 0.0
		}
	}

	if f.blurRadius > 0.1 {
		effective := f.blurRadius * shadowBlurBoost
		if effective > maxMaskBlurRadius {
			effective = maxMaskBlurRadius
		}
		mask = kernels.FastGaussianBlur(mask, effective)
	}

	renormalizeMask(mask)
	return mask
}

// highlightMask builds the smoothed highlight-zone mask, symmetric to the
// shadow mask under the luminance complement: full selection at or above the
// threshold, a linear ramp up from the knee, zero below.
func (f *ShadowHighlightFilter) highlightMask(luminance *images.FloatImage) *images.FloatImage {
	threshold := 1.0 - highlightThresholdFraction*f.tonalWidth
	knee := threshold * highlightKneeFraction

	mask := images.NewFloatImage(luminance.Width, luminance.Height, 1)
	for i, lum := range luminance.Pix {
		switch {
		case lum >= threshold:
			mask.Pix[i] = 1.0
		case lum >= knee:
			mask.Pix[i] = (lum - knee) / (threshold - knee)
		default:
			mask.Pix[i] = 0.0
		}
	}

	if f.blurRadius > 0.1 {
		effective := f.blurRadius
		if effective > maxMaskBlurRadius {
			effective = maxMaskBlurRadius
		}
		mask = kernels.FastGaussianBlur(mask, effective)
	}

	renormalizeMask(mask)
	return mask
}

// renormalizeMask divides the mask by its maximum so the strongest affected
// pixel reaches exactly 1, compensating for edge energy lost to the blur's
// border averaging. An all-zero mask is left untouched.
func renormalizeMask(mask *images.FloatImage) {
	max := mask.Max()
	if max <= 0 {
		return
	}
	for i := range mask.Pix {
		mask.Pix[i] /= max
	}
}

func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
