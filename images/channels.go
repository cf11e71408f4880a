package images

import (
	"github.com/pkg/errors"
)

var (
	// ErrChannelCount indicates a split input that is not a 3-channel image.
	ErrChannelCount = errors.New("lab image must have 3 channels")
	// ErrPlaneCount indicates a merge input that is not exactly 3 planes.
	ErrPlaneCount = errors.New("lab merge requires exactly 3 planes")
)

// SplitLab splits a 3-channel Lab image into its L, a and b planes.
//
// Arguments:
// - lab: A 3-channel float image in Lab storage encoding.
//
// Returns:
// - A slice of three single-channel planes ordered L, a, b.
// - ErrChannelCount if the input does not have exactly 3 channels.
func SplitLab(lab *FloatImage) ([]*FloatImage, error) {
	if lab == nil || lab.Channels != 3 {
		return nil, ErrChannelCount
	}

	planes := []*FloatImage{
		NewFloatImage(lab.Width, lab.Height, 1),
		NewFloatImage(lab.Width, lab.Height, 1),
		NewFloatImage(lab.Width, lab.Height, 1),
	}

	for y := 0; y < lab.Height; y++ {
		for x := 0; x < lab.Width; x++ {
			l, a, b := lab.VecAt(x, y)
			planes[0].Set(x, y, l)
			planes[1].Set(x, y, a)
			planes[2].Set(x, y, b)
		}
	}

	return planes, nil
}

// MergeLab combines L, a and b planes back into a 3-channel Lab image.
//
// All three planes must share the dimensions of the first; this is the
// caller's responsibility and is not re-verified here — the tone pipeline
// only ever merges planes it produced from a single split.
//
// Arguments:
// - planes: Exactly three single-channel planes ordered L, a, b.
//
// Returns:
// - The merged 3-channel Lab image.
// - ErrPlaneCount if the slice does not contain exactly 3 planes.
func MergeLab(planes []*FloatImage) (*FloatImage, error) {
	if len(planes) != 3 {
		return nil, ErrPlaneCount
	}

	lab := NewFloatImage(planes[0].Width, planes[0].Height, 3)

	for y := 0; y < lab.Height; y++ {
		for x := 0; x < lab.Width; x++ {
			lab.SetVec(x, y, planes[0].At(x, y), planes[1].At(x, y), planes[2].At(x, y))
		}
	}

	return lab, nil
}
