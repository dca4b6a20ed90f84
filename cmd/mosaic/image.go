package main

import (
	"log/slog"

	"github.com/wbrown/img2mosaic"
	"github.com/wbrown/img2mosaic/report"
)

// ImageCmd turns one image file into a mosaic.
type ImageCmd struct {
	Input string `arg:"" help:"Image to quantize (png, jpeg, gif, bmp, tiff or webp)." type:"existingfile"`

	SourceFlags  `embed:""`
	PaletteFlags `embed:""`
	OutputFlags  `embed:""`
}

func (c *ImageCmd) Validate() error {
	if err := c.SourceFlags.validate(); err != nil {
		return err
	}
	return c.OutputFlags.Validate()
}

func (c *ImageCmd) Run(logger *slog.Logger, s *streams) error {
	logger = logger.With("file", c.Input)

	p, err := c.PaletteFlags.Load(logger)
	if err != nil {
		return err
	}

	src, release, err := c.SourceFlags.load(c.Input)
	if err != nil {
		return err
	}
	defer release()

	res := img2mosaic.NewBuilder(p, img2mosaic.WithLogger(logger)).Build(src)
	return c.emit(s, logger, report.New(c.Input, c.Palette, res), res.Grid)
}
