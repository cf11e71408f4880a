// Package util - image file loading and saving for the tone correction CLI.
package util

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chai2010/webp"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"

	"github.com/nvr-ai/go-tone/images"
)

// ImageFile represents a decoded image file.
type ImageFile struct {
	// Path is the path the image was loaded from.
	Path string
	// Image is the decoded BGR image.
	Image *images.BGRImage
}

// DecodeImage decodes raw JPEG, PNG, WebP or BMP bytes into a BGR image.
//
// Arguments:
// - data: The encoded image bytes.
//
// Returns:
// - The decoded image.
// - An error if the bytes are not a supported image format.
func DecodeImage(data []byte) (*images.BGRImage, error) {
	if len(data) == 0 {
		return nil, errors.New("empty image data")
	}

	// WebP is not registered with image.Decode by the codec package, so it
	// is sniffed explicitly first.
	if bytes.HasPrefix(data, []byte("RIFF")) {
		img, err := webp.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, errors.Wrap(err, "decoding webp image")
		}
		return images.FromImage(img), nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "decoding image")
	}

	return images.FromImage(img), nil
}

// LoadImageFile reads and decodes a single image file.
//
// Arguments:
// - path: Path to a JPEG, PNG, WebP or BMP file.
//
// Returns:
// - The decoded BGR image.
// - An error if the file cannot be read or decoded.
func LoadImageFile(path string) (*images.BGRImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	img, err := DecodeImage(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}

	return img, nil
}

// SaveImageFile encodes an image to the format implied by the destination
// file extension and writes it to disk.
//
// Arguments:
//   - path: Destination path; extension selects the codec (.jpg/.jpeg, .png,
//     .webp, .bmp).
//   - img: The image to save.
//
// Returns:
// - An error if the extension is unsupported or encoding/writing fails.
func SaveImageFile(path string, img *images.BGRImage) error {
	if img.Empty() {
		return errors.New("refusing to save empty image")
	}

	rgba := images.ToImage(img)
	var buf bytes.Buffer
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(&buf, rgba, &jpeg.Options{Quality: 95})
	case ".png":
		err = png.Encode(&buf, rgba)
	case ".webp":
		err = webp.Encode(&buf, rgba, &webp.Options{Quality: 90})
	case ".bmp":
		err = bmp.Encode(&buf, rgba)
	default:
		return errors.Errorf("unsupported output extension: %s", filepath.Ext(path))
	}
	if err != nil {
		return errors.Wrapf(err, "encoding %s", path)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}

	return nil
}

// LoadDirectoryImageFiles reads and decodes all supported image files from a
// directory, sorted by file name.
//
// Arguments:
// - dir: Directory path containing image files.
//
// Returns:
// - One ImageFile per decodable image.
// - An error if the directory cannot be read or a file fails to decode.
func LoadDirectoryImageFiles(dir string) ([]ImageFile, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading directory %s", dir)
	}

	var loaded []ImageFile
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		switch strings.ToLower(filepath.Ext(file.Name())) {
		case ".jpg", ".jpeg", ".png", ".webp", ".bmp":
			path := filepath.Join(dir, file.Name())
			img, loadErr := LoadImageFile(path)
			if loadErr != nil {
				return nil, loadErr
			}
			loaded = append(loaded, ImageFile{Path: path, Image: img})
		}
	}

	sort.Slice(loaded, func(i, j int) bool {
		return loaded[i].Path < loaded[j].Path
	})

	return loaded, nil
}
