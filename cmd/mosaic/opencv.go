//go:build gocv

package main

import (
	"github.com/wbrown/img2mosaic"
	"github.com/wbrown/img2mosaic/cvsource"
	"github.com/wbrown/img2mosaic/imageutil"
)

func loadOpenCV(path string, width, height int) (img2mosaic.PixelSource, func(), error) {
	src, err := cvsource.Load(path)
	if err != nil {
		return nil, nil, err
	}
	defer src.Close()

	width, height = imageutil.FitSize(src.Width(), src.Height(), width, height)
	scaled, err := src.Resize(width, height)
	if err != nil {
		return nil, nil, err
	}
	return scaled, func() { scaled.Close() }, nil
}
