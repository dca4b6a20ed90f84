//go:build gocv

// Package cvsource feeds OpenCV matrices to the mosaic builder. It needs
// OpenCV installed and is only compiled with the gocv build tag:
//
//	go test -tags gocv ./cvsource
package cvsource

import (
	"fmt"
	"image"

	"github.com/wbrown/img2mosaic"
	"gocv.io/x/gocv"
)

// MatSource is an img2mosaic.PixelSource over an 8-bit BGR matrix.
// It owns the matrix; call Close when done.
type MatSource struct {
	mat gocv.Mat
}

// NewMatSource takes ownership of mat, also on error. Gray and BGRA matrices are
// converted to BGR; other types are rejected.
func NewMatSource(mat gocv.Mat) (*MatSource, error) {
	if mat.Empty() {
		mat.Close()
		return nil, fmt.Errorf("empty matrix")
	}

	var code gocv.ColorConversionCode
	switch mat.Type() {
	case gocv.MatTypeCV8UC3:
		return &MatSource{mat: mat}, nil
	case gocv.MatTypeCV8UC1:
		code = gocv.ColorGrayToBGR
	case gocv.MatTypeCV8UC4:
		code = gocv.ColorBGRAToBGR
	default:
		mat.Close()
		return nil, fmt.Errorf("unsupported matrix type %v", mat.Type())
	}

	bgr := gocv.NewMat()
	if err := gocv.CvtColor(mat, &bgr, code); err != nil {
		mat.Close()
		bgr.Close()
		return nil, fmt.Errorf("failed to convert matrix to BGR: %w", err)
	}
	mat.Close()
	return &MatSource{mat: bgr}, nil
}

// Load reads an image file with OpenCV.
func Load(path string) (*MatSource, error) {
	mat := gocv.IMRead(path, gocv.IMReadColor)
	if mat.Empty() {
		mat.Close()
		return nil, fmt.Errorf("failed to read image %q", path)
	}
	return &MatSource{mat: mat}, nil
}

// FromColors builds a one-row matrix, one pixel per color.
func FromColors(colors ...img2mosaic.Color) *MatSource {
	mat := gocv.NewMatWithSize(1, len(colors), gocv.MatTypeCV8UC3)
	for x, c := range colors {
		mat.SetUCharAt(0, x*3, c.B)
		mat.SetUCharAt(0, x*3+1, c.G)
		mat.SetUCharAt(0, x*3+2, c.R)
	}
	return &MatSource{mat: mat}
}

// Resize returns a new source scaled to width × height with area
// interpolation. The receiver is left untouched.
func (s *MatSource) Resize(width, height int) (*MatSource, error) {
	dst := gocv.NewMat()
	if err := gocv.Resize(s.mat, &dst, image.Pt(width, height), 0, 0, gocv.InterpolationArea); err != nil {
		dst.Close()
		return nil, fmt.Errorf("failed to resize matrix: %w", err)
	}
	return &MatSource{mat: dst}, nil
}

func (s *MatSource) Width() int  { return s.mat.Cols() }
func (s *MatSource) Height() int { return s.mat.Rows() }

// RGBAt swaps OpenCV's BGR order back to RGB.
func (s *MatSource) RGBAt(row, col int) (r, g, b uint8) {
	v := s.mat.GetVecbAt(row, col)
	return v[2], v[1], v[0]
}

// Close releases the matrix.
func (s *MatSource) Close() error {
	return s.mat.Close()
}
