//go:build gocv

package cvsource

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbrown/img2mosaic"
	"github.com/wbrown/img2mosaic/imageutil"
	"gocv.io/x/gocv"
)

func TestMatSourceChannelOrder(t *testing.T) {
	src := FromColors(img2mosaic.Color{R: 10, G: 20, B: 30}, img2mosaic.Color{R: 200, G: 100, B: 50})
	defer src.Close()

	require.Equal(t, 2, src.Width())
	require.Equal(t, 1, src.Height())
	r, g, b := src.RGBAt(0, 1)
	assert.Equal(t, [3]uint8{200, 100, 50}, [3]uint8{r, g, b})
}

func TestMatSourceMatchesImageutil(t *testing.T) {
	img := imageutil.CreateColorBarsImage(64, 16)
	path := filepath.Join(t.TempDir(), "bars.png")
	require.NoError(t, imageutil.SaveImage(img, path))

	src, err := Load(path)
	require.NoError(t, err)
	defer src.Close()

	p := img2mosaic.NewPaletteFromColors(imageutil.ColorBars)
	want := img2mosaic.Build(img, p, nil)
	got := img2mosaic.Build(src, p, nil)
	assert.Equal(t, want, got)
}

func TestNewMatSourceConvertsGray(t *testing.T) {
	gray := gocv.NewMatWithSize(2, 3, gocv.MatTypeCV8UC1)
	gray.SetUCharAt(1, 2, 77)

	src, err := NewMatSource(gray)
	require.NoError(t, err)
	defer src.Close()

	r, g, b := src.RGBAt(1, 2)
	assert.Equal(t, [3]uint8{77, 77, 77}, [3]uint8{r, g, b})
}

func TestResize(t *testing.T) {
	src := FromColors(img2mosaic.White, img2mosaic.White, img2mosaic.White, img2mosaic.White)
	defer src.Close()

	small, err := src.Resize(2, 1)
	require.NoError(t, err)
	defer small.Close()
	assert.Equal(t, 2, small.Width())
	assert.Equal(t, 4, src.Width())
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)

	_, err = NewMatSource(gocv.NewMat())
	assert.Error(t, err)
}
