package imageutil

import (
	"image"
	"image/color"

	"github.com/wbrown/img2mosaic"
	"golang.org/x/image/draw"
)

// RenderGrid draws a quantized grid as cellSize × cellSize squares. When
// gap is positive the squares are inset by gap pixels on their right and
// bottom edges and the seams are filled with the gap color, which gives a
// tile-like preview.
func RenderGrid(g *img2mosaic.Grid, cellSize, gap int, gapColor color.Color) *RGBAImage {
	cellSize = max(cellSize, 1)
	gap = min(max(gap, 0), cellSize-1)

	dst := NewRGBAImage(g.Width*cellSize, g.Height*cellSize)
	if gap > 0 {
		draw.Draw(dst.RGBA, dst.Bounds(), image.NewUniform(gapColor), image.Point{}, draw.Src)
	}
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			c := g.At(row, col)
			r := image.Rect(col*cellSize, row*cellSize, (col+1)*cellSize-gap, (row+1)*cellSize-gap)
			draw.Draw(dst.RGBA, r, image.NewUniform(c), image.Point{}, draw.Src)
		}
	}
	return dst
}
