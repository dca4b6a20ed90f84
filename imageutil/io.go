package imageutil

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Formats lists the encodings accepted by Encode and SaveImage.
var Formats = []string{"png", "jpeg", "gif", "bmp", "tiff"}

// DecodeImage decodes PNG, JPEG, GIF, BMP, TIFF or WebP data.
func DecodeImage(r io.Reader) (*RGBAImage, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return RGBAImageFromImage(img), format, nil
}

// LoadImage loads an image from the specified path.
func LoadImage(path string) (*RGBAImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := DecodeImage(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// FormatFromPath maps a file extension to one of Formats, defaulting to png.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	case ".bmp":
		return "bmp"
	case ".tif", ".tiff":
		return "tiff"
	default:
		return "png"
	}
}

// Encode writes img to w in the named format.
func Encode(w io.Writer, img image.Image, format string) error {
	var err error
	switch format {
	case "png":
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		err = enc.Encode(w, img)
	case "jpeg":
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case "gif":
		err = gif.Encode(w, img, nil)
	case "bmp":
		err = bmp.Encode(w, img)
	case "tiff":
		err = tiff.Encode(w, img, nil)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
	if err != nil {
		return fmt.Errorf("could not encode %s: %w", strings.ToUpper(format), err)
	}
	return nil
}

// SaveImage saves an image to the specified path, choosing the format
// from the file extension.
func SaveImage(img image.Image, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %q: %w", path, closeErr)
		}
	}()

	return Encode(f, img, FormatFromPath(path))
}
