// Package img2mosaic quantizes bitmaps to a fixed palette of physical
// tile colors and counts how many tiles of each color a reconstruction
// needs.
//
// Every pixel is mapped to the nearest palette entry by Euclidean RGB
// distance, with the lowest palette index winning ties. The result is a
// Grid of resolved colors for display and a bill of materials, one
// TileCount per palette ID in the order IDs were first encountered.
package img2mosaic

import (
	"log/slog"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// PixelSource is a read-only bitmap addressed by row and column.
type PixelSource interface {
	Width() int
	Height() int
	RGBAt(row, col int) (r, g, b uint8)
}

// PixelGrid is an in-memory PixelSource of raw RGB triples, row-major.
type PixelGrid struct {
	width, height int
	pix           []uint8
}

// NewPixelGrid allocates a black width × height grid. Negative dimensions
// are treated as zero.
func NewPixelGrid(width, height int) *PixelGrid {
	width, height = max(width, 0), max(height, 0)
	return &PixelGrid{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*3),
	}
}

// PixelGridFromColors builds a single-row grid, one pixel per color.
func PixelGridFromColors(colors ...Color) *PixelGrid {
	pg := NewPixelGrid(len(colors), 1)
	for i, c := range colors {
		pg.Set(0, i, c.R, c.G, c.B)
	}
	return pg
}

func (pg *PixelGrid) Width() int  { return pg.width }
func (pg *PixelGrid) Height() int { return pg.height }

func (pg *PixelGrid) RGBAt(row, col int) (r, g, b uint8) {
	i := (row*pg.width + col) * 3
	return pg.pix[i], pg.pix[i+1], pg.pix[i+2]
}

// Set stores the pixel at (row, col).
func (pg *PixelGrid) Set(row, col int, r, g, b uint8) {
	i := (row*pg.width + col) * 3
	pg.pix[i], pg.pix[i+1], pg.pix[i+2] = r, g, b
}

// Grid holds one resolved palette color per source pixel, row-major.
type Grid struct {
	Width  int
	Height int
	Cells  []Color
}

// At returns the cell at (row, col).
func (g *Grid) At(row, col int) Color {
	return g.Cells[row*g.Width+col]
}

// Len returns the number of cells.
func (g *Grid) Len() int {
	return len(g.Cells)
}

// Build quantizes every pixel of src to its nearest entry in p, in
// row-major order. Each resolved color that carries an ID is recorded once
// in agg, which may be nil. Pixels that resolve to the White fallback of
// an empty palette are rendered but not recorded.
//
// A source with no area yields a grid with no cells and records nothing.
// Build does not reset agg; see TileAggregator.
func Build(src PixelSource, p *Palette, agg *TileAggregator) *Grid {
	return build(src, p, agg, nil)
}

func build(src PixelSource, p *Palette, agg *TileAggregator, errs *[]float64) *Grid {
	w, h := src.Width(), src.Height()
	if w <= 0 || h <= 0 {
		return &Grid{Width: max(w, 0), Height: max(h, 0)}
	}

	grid := &Grid{Width: w, Height: h, Cells: make([]Color, w*h)}
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			r, g, b := src.RGBAt(row, col)
			px := Color{R: r, G: g, B: b}
			c := p.Nearest(px)
			grid.Cells[row*w+col] = c
			if agg != nil && c.ID != "" {
				agg.Record(c.ID, c)
			}
			if errs != nil {
				*errs = append(*errs, px.Distance(c))
			}
		}
	}
	return grid
}

// Stats summarizes how far the quantized grid is from its source.
// Errors are Euclidean RGB distances per pixel. Uncounted is the number
// of pixels that are missing from the bill of materials: fallback pixels
// and pixels resolved to palette entries without an ID.
type Stats struct {
	Pixels    int
	Uncounted int
	MeanError float64
	StdDev    float64
	MaxError  float64
}

// Result is the output of one Builder pass.
type Result struct {
	Grid  *Grid
	Tiles []TileCount
	Stats Stats
}

// Builder runs build passes against one palette and owns the aggregator
// that collects their bill of materials. A Builder is used by one
// goroutine at a time; concurrent hosts create one per pass.
type Builder struct {
	palette *Palette
	tiles   *TileAggregator
	logger  *slog.Logger
}

// NewBuilder creates a Builder for p. Only WithLogger is relevant here;
// other options apply to palette construction.
func NewBuilder(p *Palette, opts ...Option) *Builder {
	s := newSettings(opts)
	return &Builder{
		palette: p,
		tiles:   NewTileAggregator(),
		logger:  s.logger,
	}
}

// Palette returns the palette this builder quantizes to.
func (b *Builder) Palette() *Palette {
	return b.palette
}

// Build runs one pass over src. The aggregator is reset first, so the
// returned tiles describe src alone.
func (b *Builder) Build(src PixelSource) Result {
	b.tiles.Reset()

	errs := make([]float64, 0, max(src.Width(), 0)*max(src.Height(), 0))
	grid := build(src, b.palette, b.tiles, &errs)
	tiles := b.tiles.Export()

	stats := Stats{
		Pixels:    grid.Len(),
		Uncounted: grid.Len() - b.tiles.Total(),
	}
	if len(errs) > 0 {
		stats.MeanError, stats.StdDev = stat.PopMeanStdDev(errs, nil)
		stats.MaxError = floats.Max(errs)
	}

	b.logger.Debug("mosaic built", "width", grid.Width, "height", grid.Height,
		"tiles", len(tiles), "uncounted", stats.Uncounted, "mean_error", stats.MeanError)

	return Result{Grid: grid, Tiles: tiles, Stats: stats}
}
