// Package glyph rasterizes a line of text into a small bitmap that the
// mosaic builder can quantize.
package glyph

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/wbrown/img2mosaic"
	"golang.org/x/image/colornames"
)

// Config describes the text to rasterize. Zero fields take the values of
// DefaultConfig, see WithDefaults.
type Config struct {
	Text         string  `json:"text"`
	FontSize     float64 `json:"fontSize"`
	Background   string  `json:"backgroundColor"`
	Foreground   string  `json:"color"`
	GridWidth    int     `json:"gridWidth"`
	GridHeight   int     `json:"gridHeight"`
	Font         string  `json:"font"`
	HeightOffset int     `json:"heightOffset"`
}

// DefaultConfig returns a 48×48 grid with 32px black bold serif text on
// white.
func DefaultConfig() Config {
	return Config{
		FontSize:   32,
		Background: "white",
		Foreground: "black",
		GridWidth:  48,
		GridHeight: 48,
		Font:       "serif",
	}
}

// WithDefaults replaces every zero field with its default.
func (c Config) WithDefaults() Config {
	def := DefaultConfig()
	if c.FontSize == 0 {
		c.FontSize = def.FontSize
	}
	if c.Background == "" {
		c.Background = def.Background
	}
	if c.Foreground == "" {
		c.Foreground = def.Foreground
	}
	if c.GridWidth == 0 {
		c.GridWidth = def.GridWidth
	}
	if c.GridHeight == 0 {
		c.GridHeight = def.GridHeight
	}
	if c.Font == "" {
		c.Font = def.Font
	}
	return c
}

// Validate reports settings that cannot be rendered.
func (c Config) Validate() error {
	switch {
	case c.GridWidth < 0:
		return fmt.Errorf("invalid grid width: %d", c.GridWidth)
	case c.GridHeight < 0:
		return fmt.Errorf("invalid grid height: %d", c.GridHeight)
	case c.FontSize < 0:
		return fmt.Errorf("invalid font size: %g", c.FontSize)
	}
	if _, err := ParseColor(c.WithDefaults().Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	if _, err := ParseColor(c.WithDefaults().Foreground); err != nil {
		return fmt.Errorf("color: %w", err)
	}
	return nil
}

// ParseColor accepts a CSS color name, #RRGGBB or #RGB.
func ParseColor(s string) (color.RGBA, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}
	if c, ok := img2mosaic.HexToRGB(name); ok {
		return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}, nil
	}
	if short := strings.TrimPrefix(name, "#"); len(short) == 3 {
		if c, ok := img2mosaic.HexToRGB(strings.Repeat(short[0:1], 2) +
			strings.Repeat(short[1:2], 2) + strings.Repeat(short[2:3], 2)); ok {
			return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}, nil
		}
	}
	return color.RGBA{}, fmt.Errorf("invalid color %q, should be a CSS name, #RGB or #RRGGBB", s)
}
