// Package imageutil adapts decoded images to the mosaic builder and turns
// quantized grids back into images.
package imageutil

import (
	"image"
	"image/color"

	"github.com/wbrown/img2mosaic"
	"golang.org/x/image/draw"
)

// RGBAImage wraps image.RGBA with row/column pixel access. It implements
// img2mosaic.PixelSource; alpha is ignored, see Flatten.
type RGBAImage struct {
	*image.RGBA
}

// NewRGBAImage creates a new RGBAImage with the specified dimensions.
func NewRGBAImage(width, height int) *RGBAImage {
	return &RGBAImage{
		RGBA: image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0))),
	}
}

// RGBAImageFromImage converts any image.Image to an RGBAImage anchored at
// the origin.
func RGBAImageFromImage(img image.Image) *RGBAImage {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return &RGBAImage{RGBA: rgba}
	}
	bounds := img.Bounds()
	dst := NewRGBAImage(bounds.Dx(), bounds.Dy())
	draw.Draw(dst.RGBA, dst.Bounds(), img, bounds.Min, draw.Src)
	return dst
}

// Flatten composites img over an opaque background so that translucent
// pixels quantize the way they are seen.
func Flatten(img image.Image, bg color.Color) *RGBAImage {
	bounds := img.Bounds()
	dst := NewRGBAImage(bounds.Dx(), bounds.Dy())
	draw.Draw(dst.RGBA, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(dst.RGBA, dst.Bounds(), img, bounds.Min, draw.Over)
	return dst
}

// Width returns the image width.
func (img *RGBAImage) Width() int {
	return img.Bounds().Dx()
}

// Height returns the image height.
func (img *RGBAImage) Height() int {
	return img.Bounds().Dy()
}

// RGBAt returns the channels of the pixel at (row, col).
func (img *RGBAImage) RGBAt(row, col int) (r, g, b uint8) {
	c := img.RGBAAt(col, row)
	return c.R, c.G, c.B
}

// ColorAt returns the pixel at (x, y) as a mosaic color.
func (img *RGBAImage) ColorAt(x, y int) img2mosaic.Color {
	c := img.RGBAAt(x, y)
	return img2mosaic.Color{R: c.R, G: c.G, B: c.B}
}

// SetColor sets the pixel at (x, y) to an opaque c.
func (img *RGBAImage) SetColor(x, y int, c img2mosaic.Color) {
	img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
}

// Clone creates a deep copy of the image.
func (img *RGBAImage) Clone() *RGBAImage {
	clone := NewRGBAImage(img.Width(), img.Height())
	draw.Draw(clone.RGBA, clone.Bounds(), img.RGBA, img.Bounds().Min, draw.Src)
	return clone
}
