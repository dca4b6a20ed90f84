package main

import (
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/wbrown/img2mosaic"
)

// PalettesCmd lists the embedded palettes.
type PalettesCmd struct{}

func (c *PalettesCmd) Run(logger *slog.Logger, s *streams) error {
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCOLORS\tREJECTED")
	for _, name := range img2mosaic.EmbeddedPalettes() {
		records, err := img2mosaic.LoadRecords(name, img2mosaic.DefaultFields)
		if err != nil {
			return err
		}
		p := img2mosaic.NewPalette(records, img2mosaic.WithLogger(logger))
		fmt.Fprintf(tw, "%s\t%d\t%d\n", name, p.Len(), p.Rejected())
	}
	return tw.Flush()
}
