package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/wbrown/img2mosaic"
	"github.com/wbrown/img2mosaic/internal/parallel"
	"github.com/wbrown/img2mosaic/report"
)

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".bmp": true, ".tif": true, ".tiff": true, ".webp": true,
}

// BatchCmd turns every image in a folder into a mosaic. Files are processed
// concurrently; the palette is shared and each file gets its own builder.
type BatchCmd struct {
	Scan    string `arg:"" help:"Folder to scan for images." type:"existingdir"`
	Dest    string `help:"Destination folder, relative to the scan folder if not absolute." default:"mosaics"`
	Workers int    `help:"Number of concurrent workers, 0 for one per CPU." default:"0"`
	Format  string `help:"Report format (${enum})." enum:"json,csv,html" default:"json" group:"report"`
	Preview bool   `help:"Also write a PNG preview per image." group:"preview"`

	SourceFlags  `embed:""`
	PaletteFlags `embed:""`
	ReportFields `embed:"" prefix:"tile-"`
	PreviewFlags `embed:""`
}

func (c *BatchCmd) Validate() error {
	if err := c.SourceFlags.validate(); err != nil {
		return err
	}
	if err := c.fields().Validate(); err != nil {
		return err
	}
	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(c.Scan, c.Dest)
	}
	return c.PreviewFlags.validate()
}

func (c *BatchCmd) Run(logger *slog.Logger) error {
	p, err := c.PaletteFlags.Load(logger)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}
	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	pool := parallel.Start(c.Workers)
	var processed, failed atomic.Uint64
	for _, file := range files {
		if file.IsDir() || !imageExts[strings.ToLower(filepath.Ext(file.Name()))] {
			continue
		}
		name := file.Name()
		pool.Do(func() {
			fileLog := logger.With("file", name)
			if err := c.process(p, fileLog, name); err != nil {
				failed.Add(1)
				fileLog.Error("could not build mosaic", "error", err)
				return
			}
			processed.Add(1)
		})
	}
	pool.Wait()

	logger.Info("stats", "processed", processed.Load(), "errors", failed.Load(),
		"total", processed.Load()+failed.Load(), "workers", pool.Workers())
	if n := failed.Load(); n > 0 {
		return fmt.Errorf("error processing %d files", n)
	}
	return nil
}

func (c *BatchCmd) process(p *img2mosaic.Palette, logger *slog.Logger, name string) error {
	src, release, err := c.SourceFlags.load(filepath.Join(c.Scan, name))
	if err != nil {
		return err
	}
	defer release()

	res := img2mosaic.NewBuilder(p, img2mosaic.WithLogger(logger)).Build(src)
	doc := report.New(name, c.Palette, res)

	base := strings.TrimSuffix(name, filepath.Ext(name))
	reportPath := filepath.Join(c.Dest, base+".bom."+c.Format)
	if err := writeReport(nil, reportPath, c.Format, doc, c.fields()); err != nil {
		return err
	}
	if c.Preview {
		if err := c.save(res.Grid, filepath.Join(c.Dest, base+".png")); err != nil {
			return fmt.Errorf("could not write preview: %w", err)
		}
	}
	logger.Debug("mosaic written", "report", reportPath, "tiles", doc.Total())
	return nil
}
