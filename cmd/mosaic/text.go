package main

import (
	"fmt"
	"log/slog"

	"github.com/wbrown/img2mosaic"
	"github.com/wbrown/img2mosaic/glyph"
	"github.com/wbrown/img2mosaic/report"
)

// TextCmd rasterizes a line of text and turns it into a mosaic.
type TextCmd struct {
	Text         string  `arg:"" optional:"" help:"Text to render."`
	FontSize     float64 `help:"Font size in pixels." default:"32" group:"text"`
	Background   string  `help:"Background color, a CSS name or hex." default:"white" group:"text"`
	Color        string  `help:"Text color, a CSS name or hex." default:"black" group:"text"`
	GridWidth    int     `help:"Mosaic width in tiles." default:"48" group:"text"`
	GridHeight   int     `help:"Mosaic height in tiles." default:"48" group:"text"`
	Font         string  `help:"serif, sans, mono or a TrueType file." default:"serif" group:"text"`
	HeightOffset int     `help:"Move the text down by this many tiles." default:"0" group:"text"`

	PaletteFlags `embed:""`
	OutputFlags  `embed:""`
}

func (c *TextCmd) config() glyph.Config {
	return glyph.Config{
		Text:         c.Text,
		FontSize:     c.FontSize,
		Background:   c.Background,
		Foreground:   c.Color,
		GridWidth:    c.GridWidth,
		GridHeight:   c.GridHeight,
		Font:         c.Font,
		HeightOffset: c.HeightOffset,
	}
}

func (c *TextCmd) Validate() error {
	if err := c.config().Validate(); err != nil {
		return err
	}
	return c.OutputFlags.Validate()
}

func (c *TextCmd) Run(logger *slog.Logger, s *streams) error {
	p, err := c.PaletteFlags.Load(logger)
	if err != nil {
		return err
	}

	img, err := glyph.Render(c.config())
	if err != nil {
		return fmt.Errorf("could not render text: %w", err)
	}

	res := img2mosaic.NewBuilder(p, img2mosaic.WithLogger(logger)).Build(img)
	doc := report.New("text:"+c.Text, c.Palette, res)
	return c.emit(s, logger.With("text", c.Text), doc, res.Grid)
}
