package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/wbrown/img2mosaic"
	"github.com/wbrown/img2mosaic/extract"
	"github.com/wbrown/img2mosaic/imageutil"
)

// ExtractCmd writes a palette file built from the colors of an image. The
// output loads back with --palette.
type ExtractCmd struct {
	Input  string `arg:"" help:"Image to take colors from." type:"existingfile"`
	Colors int    `help:"Number of colors to extract." default:"8" short:"k"`
	Method string `help:"Extraction method (${enum})." enum:"dominant,kmeans" default:"dominant"`
	Format string `help:"Palette file format (${enum})." enum:"json,csv" default:"json"`
	Output string `help:"Palette destination, - for stdout." default:"-" short:"o"`
}

func (c *ExtractCmd) Validate() error {
	if c.Colors < 1 {
		return fmt.Errorf("invalid color count: %d", c.Colors)
	}
	return nil
}

func (c *ExtractCmd) Run(logger *slog.Logger, s *streams) (err error) {
	method, err := extract.ParseMethod(c.Method)
	if err != nil {
		return err
	}
	img, err := imageutil.LoadImage(c.Input)
	if err != nil {
		return err
	}

	records, err := extract.Records(img, c.Colors, method)
	if err != nil {
		return fmt.Errorf("could not extract colors from %q: %w", c.Input, err)
	}
	logger.Info("colors extracted", "file", c.Input, "method", method, "colors", len(records))

	out := s.out
	if c.Output != "-" {
		f, err := os.Create(c.Output)
		if err != nil {
			return fmt.Errorf("could not create palette %q: %w", c.Output, err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("could not close palette %q: %w", c.Output, closeErr)
			}
		}()
		out = f
	}
	return img2mosaic.WriteRecords(out, c.Format, records, img2mosaic.DefaultFields)
}
