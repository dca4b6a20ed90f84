//go:build !gocv

package main

import (
	"errors"

	"github.com/wbrown/img2mosaic"
)

func loadOpenCV(string, int, int) (img2mosaic.PixelSource, func(), error) {
	return nil, nil, errors.New("built without OpenCV support, rebuild with -tags gocv")
}
