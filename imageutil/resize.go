package imageutil

import (
	"golang.org/x/image/draw"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationArea uses Catmull-Rom, the best choice for downscaling
	// a photo to a coarse mosaic.
	InterpolationArea Interpolation = iota

	// InterpolationLinear uses bilinear interpolation.
	InterpolationLinear

	// InterpolationNearest uses nearest-neighbor interpolation. Use it for
	// rasterized text so no blended colors appear.
	InterpolationNearest
)

// ParseInterpolation maps "area", "linear" and "nearest" to an
// Interpolation.
func ParseInterpolation(name string) (Interpolation, bool) {
	switch name {
	case "area", "":
		return InterpolationArea, true
	case "linear":
		return InterpolationLinear, true
	case "nearest":
		return InterpolationNearest, true
	}
	return InterpolationArea, false
}

func (interp Interpolation) scaler() draw.Scaler {
	switch interp {
	case InterpolationLinear:
		return draw.BiLinear
	case InterpolationNearest:
		return draw.NearestNeighbor
	default:
		return draw.CatmullRom
	}
}

// Resize resizes an RGBA image to the specified dimensions using the
// given interpolation method.
func Resize(img *RGBAImage, width, height int, interp Interpolation) *RGBAImage {
	dst := NewRGBAImage(width, height)
	if dst.Width() == 0 || dst.Height() == 0 || img.Width() == 0 || img.Height() == 0 {
		return dst
	}
	interp.scaler().Scale(dst.RGBA, dst.Bounds(), img.RGBA, img.Bounds(), draw.Src, nil)
	return dst
}

// FitSize returns the largest size inside width × height with the aspect
// ratio of a w × h image. A zero bound is derived from the other one; with
// both zero the size is unchanged.
func FitSize(w, h, width, height int) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	switch {
	case width <= 0 && height <= 0:
		return w, h
	case width <= 0:
		return max(1, w*height/h), height
	case height <= 0:
		return width, max(1, h*width/w)
	case w*height > h*width:
		return width, max(1, h*width/w)
	default:
		return max(1, w*height/h), height
	}
}

// Fit resizes img to fit inside width × height, keeping its aspect ratio.
// See FitSize.
func Fit(img *RGBAImage, width, height int, interp Interpolation) *RGBAImage {
	w, h := FitSize(img.Width(), img.Height(), width, height)
	if w == img.Width() && h == img.Height() {
		return img.Clone()
	}
	return Resize(img, w, h, interp)
}
