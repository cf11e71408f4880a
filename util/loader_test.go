package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-tone/images"
)

func testImage() *images.BGRImage {
	img := images.NewBGRImage(10, 10)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.SetBGR(x, y, uint8(x*25), uint8(y*25), 200)
		}
	}
	return img
}

// TestSaveLoadRoundTripLossless verifies PNG and BMP survive a disk round
// trip without pixel changes.
func TestSaveLoadRoundTripLossless(t *testing.T) {
	src := testImage()

	for _, ext := range []string{".png", ".bmp"} {
		path := filepath.Join(t.TempDir(), "img"+ext)
		require.NoError(t, SaveImageFile(path, src), "saving %s should succeed", ext)

		loaded, err := LoadImageFile(path)
		require.NoError(t, err, "loading %s should succeed", ext)
		assert.Equal(t, src.Pix, loaded.Pix, "%s round trip must be lossless", ext)
	}
}

// TestSaveLoadJPEG verifies the lossy path preserves dimensions and stays
// close to the source.
func TestSaveLoadJPEG(t *testing.T) {
	src := testImage()
	path := filepath.Join(t.TempDir(), "img.jpg")

	require.NoError(t, SaveImageFile(path, src))
	loaded, err := LoadImageFile(path)
	require.NoError(t, err)

	assert.Equal(t, src.Width, loaded.Width)
	assert.Equal(t, src.Height, loaded.Height)
}

// TestSaveRejectsUnsupportedExtension verifies codec selection by extension.
func TestSaveRejectsUnsupportedExtension(t *testing.T) {
	err := SaveImageFile(filepath.Join(t.TempDir(), "img.tiff"), testImage())
	assert.Error(t, err, "unsupported extension must fail")
}

// TestSaveRejectsEmptyImage verifies zero-pixel images are never written.
func TestSaveRejectsEmptyImage(t *testing.T) {
	err := SaveImageFile(filepath.Join(t.TempDir(), "img.png"), images.NewBGRImage(0, 0))
	assert.Error(t, err, "empty image must not be saved")
}

// TestDecodeImageErrors covers empty and undecodable input.
func TestDecodeImageErrors(t *testing.T) {
	_, err := DecodeImage(nil)
	assert.Error(t, err, "empty data must fail")

	_, err = DecodeImage([]byte("definitely not an image"))
	assert.Error(t, err, "junk data must fail")
}

// TestLoadDirectoryImageFiles verifies directory scanning decodes supported
// files, skips others, and sorts by path.
func TestLoadDirectoryImageFiles(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, SaveImageFile(filepath.Join(dir, "b.png"), testImage()))
	require.NoError(t, SaveImageFile(filepath.Join(dir, "a.bmp"), testImage()))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o644))

	loaded, err := LoadDirectoryImageFiles(dir)
	require.NoError(t, err)
	require.Len(t, loaded, 2, "only image files are loaded")
	assert.Equal(t, filepath.Join(dir, "a.bmp"), loaded[0].Path, "results sorted by path")
	assert.Equal(t, filepath.Join(dir, "b.png"), loaded[1].Path)
	assert.False(t, loaded[0].Image.Empty(), "loaded images are decoded")
}
