package imageutil

import (
	"image/color"
	"math"

	"github.com/wbrown/img2mosaic"
)

// CreateGradientImage creates a horizontal gray gradient test image.
func CreateGradientImage(width, height int) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(255 * x / max(width-1, 1))
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

// CreateCheckerboardImage creates a black and white checkerboard.
func CreateCheckerboardImage(width, height, squareSize int) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if ((x/squareSize)+(y/squareSize))%2 == 0 {
				img.SetColor(x, y, img2mosaic.White)
			} else {
				img.SetColor(x, y, img2mosaic.Color{})
			}
		}
	}
	return img
}

// CreateSolidImage creates a solid color image.
func CreateSolidImage(width, height int, c img2mosaic.Color) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetColor(x, y, c)
		}
	}
	return img
}

// ColorBars are the colors of CreateColorBarsImage, left to right.
var ColorBars = []img2mosaic.Color{
	{R: 255, G: 255, B: 255}, // White
	{R: 255, G: 255, B: 0},   // Yellow
	{R: 0, G: 255, B: 255},   // Cyan
	{R: 0, G: 255, B: 0},     // Green
	{R: 255, G: 0, B: 255},   // Magenta
	{R: 255, G: 0, B: 0},     // Red
	{R: 0, G: 0, B: 255},     // Blue
	{R: 0, G: 0, B: 0},       // Black
}

// CreateColorBarsImage creates a color bars test pattern.
func CreateColorBarsImage(width, height int) *RGBAImage {
	img := NewRGBAImage(width, height)
	barWidth := max(width/len(ColorBars), 1)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetColor(x, y, ColorBars[min(x/barWidth, len(ColorBars)-1)])
		}
	}
	return img
}

// CalculateMSE calculates the Mean Squared Error between two RGBA images.
func CalculateMSE(img1, img2 *RGBAImage) float64 {
	if img1.Width() != img2.Width() || img1.Height() != img2.Height() {
		return math.MaxFloat64
	}

	width, height := img1.Width(), img1.Height()
	if width == 0 || height == 0 {
		return 0
	}
	var sumSq float64
	count := float64(width * height * 3) // 3 channels

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c1 := img1.RGBAAt(x, y)
			c2 := img2.RGBAAt(x, y)
			dr := float64(c1.R) - float64(c2.R)
			dg := float64(c1.G) - float64(c2.G)
			db := float64(c1.B) - float64(c2.B)
			sumSq += dr*dr + dg*dg + db*db
		}
	}

	return sumSq / count
}

// CalculateMaxDiff calculates the maximum channel difference between two
// images.
func CalculateMaxDiff(img1, img2 *RGBAImage) int {
	if img1.Width() != img2.Width() || img1.Height() != img2.Height() {
		return 256
	}

	maxDiff := 0
	for y := 0; y < img1.Height(); y++ {
		for x := 0; x < img1.Width(); x++ {
			c1 := img1.RGBAAt(x, y)
			c2 := img2.RGBAAt(x, y)
			maxDiff = max(maxDiff,
				abs(int(c1.R)-int(c2.R)),
				abs(int(c1.G)-int(c2.G)),
				abs(int(c1.B)-int(c2.B)))
		}
	}
	return maxDiff
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
