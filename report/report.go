// Package report writes the bill of materials of a mosaic as JSON, CSV or
// an HTML bar chart.
package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wbrown/img2mosaic"
)

// ErrUnknownFormat is returned by Write for formats outside Formats.
var ErrUnknownFormat = errors.New("unknown report format")

// Formats lists the formats accepted by Write.
var Formats = []string{"json", "csv", "html"}

// Fields names the output fields of one tile row.
type Fields struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Value    string `json:"value"`
	Quantity string `json:"quantity"`
}

// DefaultFields is used when no field names are configured.
var DefaultFields = Fields{ID: "colorId", Name: "colorName", Value: "colorValue", Quantity: "quantity"}

// WithDefaults fills empty names from DefaultFields.
func (f Fields) WithDefaults() Fields {
	if f.ID == "" {
		f.ID = DefaultFields.ID
	}
	if f.Name == "" {
		f.Name = DefaultFields.Name
	}
	if f.Value == "" {
		f.Value = DefaultFields.Value
	}
	if f.Quantity == "" {
		f.Quantity = DefaultFields.Quantity
	}
	return f
}

// Validate rejects field sets where two fields share a name.
func (f Fields) Validate() error {
	f = f.WithDefaults()
	seen := make(map[string]string, 4)
	for _, kv := range [][2]string{{"id", f.ID}, {"name", f.Name}, {"value", f.Value}, {"quantity", f.Quantity}} {
		if other, ok := seen[kv[1]]; ok {
			return fmt.Errorf("%s and %s fields are both named %q", other, kv[0], kv[1])
		}
		seen[kv[1]] = kv[0]
	}
	return nil
}

// Document is the bill of materials of one mosaic.
type Document struct {
	ID      string
	Source  string
	Palette string
	Width   int
	Height  int
	Created time.Time
	Tiles   []img2mosaic.TileCount
	Stats   img2mosaic.Stats
}

// New creates a document with a fresh random ID.
func New(source, palette string, res img2mosaic.Result) Document {
	return Document{
		ID:      uuid.NewString(),
		Source:  source,
		Palette: palette,
		Width:   res.Grid.Width,
		Height:  res.Grid.Height,
		Created: time.Now().UTC(),
		Tiles:   res.Tiles,
		Stats:   res.Stats,
	}
}

// Total returns the number of tiles in the document.
func (d Document) Total() int {
	total := 0
	for _, t := range d.Tiles {
		total += t.Count
	}
	return total
}

// Write writes d in the given format.
func Write(w io.Writer, format string, d Document, fields Fields) error {
	switch strings.ToLower(format) {
	case "json":
		return WriteJSON(w, d, fields)
	case "csv":
		return WriteCSV(w, d, fields)
	case "html":
		return WriteChart(w, d)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

type jsonStats struct {
	Pixels    int     `json:"pixels"`
	Uncounted int     `json:"uncounted"`
	MeanError float64 `json:"meanError"`
	StdDev    float64 `json:"stdDev"`
	MaxError  float64 `json:"maxError"`
}

type jsonDocument struct {
	ID      string           `json:"id"`
	Source  string           `json:"source,omitempty"`
	Palette string           `json:"palette,omitempty"`
	Width   int              `json:"width"`
	Height  int              `json:"height"`
	Created time.Time        `json:"created"`
	Total   int              `json:"total"`
	Tiles   []map[string]any `json:"tiles"`
	Stats   jsonStats        `json:"stats"`
}

// WriteJSON writes d as an indented JSON object. Each tile is an object
// keyed by the configured field names.
func WriteJSON(w io.Writer, d Document, fields Fields) error {
	fields = fields.WithDefaults()
	if err := fields.Validate(); err != nil {
		return err
	}

	doc := jsonDocument{
		ID:      d.ID,
		Source:  d.Source,
		Palette: d.Palette,
		Width:   d.Width,
		Height:  d.Height,
		Created: d.Created,
		Total:   d.Total(),
		Tiles:   make([]map[string]any, 0, len(d.Tiles)),
		Stats:   jsonStats(d.Stats),
	}
	for _, t := range d.Tiles {
		doc.Tiles = append(doc.Tiles, map[string]any{
			fields.ID:       t.ID,
			fields.Name:     t.Name,
			fields.Value:    t.Hex,
			fields.Quantity: t.Count,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("error encoding report: %w", err)
	}
	return nil
}

// WriteCSV writes one header row of field names and one row per tile.
func WriteCSV(w io.Writer, d Document, fields Fields) error {
	fields = fields.WithDefaults()
	if err := fields.Validate(); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{fields.ID, fields.Name, fields.Value, fields.Quantity}); err != nil {
		return fmt.Errorf("error writing report header: %w", err)
	}
	for _, t := range d.Tiles {
		if err := cw.Write([]string{t.ID, t.Name, t.Hex, strconv.Itoa(t.Count)}); err != nil {
			return fmt.Errorf("error writing report row %q: %w", t.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("error flushing report: %w", err)
	}
	return nil
}
