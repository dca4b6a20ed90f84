package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/wbrown/img2mosaic"
	"github.com/wbrown/img2mosaic/glyph"
	"github.com/wbrown/img2mosaic/imageutil"
	"github.com/wbrown/img2mosaic/report"
)

// PaletteFlags select the palette and how pixels are matched to it.
type PaletteFlags struct {
	Palette         string `help:"Embedded palette name or path to a JSON or CSV palette file." default:"bricklink" short:"p" group:"palette"`
	ColorIDField    string `help:"Palette field holding the tile identifier." default:"id" group:"palette"`
	ColorNameField  string `help:"Palette field holding the color name." default:"name" group:"palette"`
	ColorValueField string `help:"Palette field holding the hex color value." default:"hex" group:"palette"`
	Metric          string `help:"Color distance (${enum})." enum:"rgb,redmean,lab" default:"rgb" group:"palette"`
	KdThreshold     int    `help:"Use a k-d tree for palettes with at least this many colors, 0 to disable." default:"64" group:"palette"`
}

func (f *PaletteFlags) fieldMap() img2mosaic.FieldMap {
	return img2mosaic.FieldMap{ID: f.ColorIDField, Name: f.ColorNameField, Value: f.ColorValueField}
}

// Load reads and validates the palette. A palette with no usable entry is
// an error here, even though the builder would fall back to white.
func (f *PaletteFlags) Load(logger *slog.Logger) (*img2mosaic.Palette, error) {
	metric, ok := img2mosaic.MetricByName(f.Metric)
	if !ok {
		return nil, fmt.Errorf("unknown metric %q", f.Metric)
	}
	records, err := img2mosaic.LoadRecords(f.Palette, f.fieldMap())
	if err != nil {
		return nil, err
	}
	p := img2mosaic.NewPalette(records,
		img2mosaic.WithMetric(metric),
		img2mosaic.WithKdSearch(f.KdThreshold),
		img2mosaic.WithLogger(logger))
	if p.Len() == 0 {
		return nil, fmt.Errorf("palette %q has no usable colors (%d rejected)", f.Palette, p.Rejected())
	}
	logger.Info("palette loaded", "palette", f.Palette, "colors", p.Len(), "rejected", p.Rejected(),
		"metric", p.Metric().Name())
	return p, nil
}

// ReportFields name the columns of the bill of materials.
type ReportFields struct {
	IDField       string `name:"id-field" help:"Report field for the tile identifier." default:"colorId" group:"report"`
	NameField     string `name:"name-field" help:"Report field for the color name." default:"colorName" group:"report"`
	ValueField    string `name:"value-field" help:"Report field for the hex color value." default:"colorValue" group:"report"`
	QuantityField string `name:"quantity-field" help:"Report field for the tile count." default:"quantity" group:"report"`
}

func (f *ReportFields) fields() report.Fields {
	return report.Fields{ID: f.IDField, Name: f.NameField, Value: f.ValueField, Quantity: f.QuantityField}
}

// PreviewFlags control the rendered picture of a mosaic.
type PreviewFlags struct {
	CellSize int    `help:"Preview pixels per tile." default:"16" group:"preview"`
	Gap      int    `help:"Preview seam width in pixels." default:"1" group:"preview"`
	GapColor string `help:"Preview seam color." default:"#202020" group:"preview"`
}

func (f *PreviewFlags) validate() error {
	if f.CellSize < 1 {
		return fmt.Errorf("invalid cell size: %d", f.CellSize)
	}
	if _, err := glyph.ParseColor(f.GapColor); err != nil {
		return fmt.Errorf("gap color: %w", err)
	}
	return nil
}

func (f *PreviewFlags) save(g *img2mosaic.Grid, path string) error {
	gap, _ := glyph.ParseColor(f.GapColor)
	return imageutil.SaveImage(imageutil.RenderGrid(g, f.CellSize, f.Gap, gap), path)
}

// OutputFlags decide where a single mosaic goes.
type OutputFlags struct {
	Output       string       `help:"Bill of materials destination, - for stdout." default:"-" short:"o" group:"report"`
	Format       string       `help:"Report format (${enum}); auto picks from the output extension." enum:"auto,json,csv,html" default:"auto" group:"report"`
	ReportFields `embed:"" prefix:"tile-"`
	Preview      string `help:"Write a PNG preview of the mosaic to this file." type:"path" group:"preview"`
	PreviewFlags `embed:""`
	Show         bool `help:"Print the mosaic to the terminal in 24-bit color." group:"preview"`
	HalfBlock    bool `help:"With --show, pack two rows into each text line." group:"preview"`
}

func (o *OutputFlags) Validate() error {
	if err := o.fields().Validate(); err != nil {
		return err
	}
	return o.PreviewFlags.validate()
}

func (o *OutputFlags) format() string {
	if o.Format != "auto" && o.Format != "" {
		return o.Format
	}
	switch filepath.Ext(o.Output) {
	case ".csv":
		return "csv"
	case ".html", ".htm":
		return "html"
	}
	return "json"
}

// emit writes the report, the preview and the terminal rendering.
func (o *OutputFlags) emit(s *streams, logger *slog.Logger, doc report.Document, g *img2mosaic.Grid) error {
	if o.Show {
		if _, err := io.WriteString(s.errOut, img2mosaic.RenderANSI(g, o.HalfBlock)); err != nil {
			return fmt.Errorf("could not print mosaic: %w", err)
		}
	}

	if o.Preview != "" {
		if err := o.save(g, o.Preview); err != nil {
			return fmt.Errorf("could not write preview: %w", err)
		}
		logger.Info("preview written", "file", o.Preview)
	}

	if err := writeReport(s.out, o.Output, o.format(), doc, o.fields()); err != nil {
		return err
	}
	logger.Info("mosaic done", "id", doc.ID, "width", doc.Width, "height", doc.Height,
		"tiles", doc.Total(), "colors", len(doc.Tiles), "mean_error", doc.Stats.MeanError)
	return nil
}

func writeReport(stdout io.Writer, path, format string, doc report.Document, fields report.Fields) (err error) {
	if path == "-" || path == "" {
		return report.Write(stdout, format, doc, fields)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create report %q: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("could not close report %q: %w", path, closeErr)
		}
	}()
	if err := report.Write(f, format, doc, fields); err != nil {
		return fmt.Errorf("could not write report %q: %w", path, err)
	}
	return nil
}

// SourceFlags size and flatten decoded images before quantization.
type SourceFlags struct {
	Width         int    `help:"Mosaic width in tiles." default:"48" group:"source"`
	Height        int    `help:"Mosaic height in tiles, 0 to keep the aspect ratio." default:"0" group:"source"`
	Interpolation string `help:"Resize interpolation (${enum})." enum:"area,linear,nearest" default:"area" group:"source"`
	Background    string `help:"Color placed under transparent pixels." default:"white" group:"source"`
	OpenCV        bool   `name:"opencv" help:"Decode and resize with OpenCV (needs a gocv build)." group:"source"`
}

func (f *SourceFlags) validate() error {
	switch {
	case f.Width < 0:
		return fmt.Errorf("invalid width: %d", f.Width)
	case f.Height < 0:
		return fmt.Errorf("invalid height: %d", f.Height)
	case f.Width == 0 && f.Height == 0:
		return fmt.Errorf("no mosaic dimensions given")
	}
	if _, err := glyph.ParseColor(f.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	return nil
}

// load decodes path and scales it to the mosaic size.
func (f *SourceFlags) load(path string) (img2mosaic.PixelSource, func(), error) {
	if f.OpenCV {
		return loadOpenCV(path, f.Width, f.Height)
	}

	img, err := imageutil.LoadImage(path)
	if err != nil {
		return nil, nil, err
	}
	bg, _ := glyph.ParseColor(f.Background)
	interp, _ := imageutil.ParseInterpolation(f.Interpolation)
	return imageutil.Fit(imageutil.Flatten(img, bg), f.Width, f.Height, interp), func() {}, nil
}
