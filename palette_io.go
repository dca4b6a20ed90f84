package img2mosaic

import (
	"bytes"
	"embed"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed colordata/*.json colordata/*.csv
var colorFS embed.FS

// Record is one externally sourced palette row before validation.
type Record struct {
	Hex  string
	ID   string
	Name string
}

// FieldMap names the fields of a palette row that hold the identifier,
// the display name and the hex color value.
type FieldMap struct {
	ID    string
	Name  string
	Value string
}

// DefaultFields is the field naming used by the embedded palettes.
var DefaultFields = FieldMap{ID: "id", Name: "name", Value: "hex"}

func (f FieldMap) withDefaults() FieldMap {
	if f.ID == "" {
		f.ID = DefaultFields.ID
	}
	if f.Name == "" {
		f.Name = DefaultFields.Name
	}
	if f.Value == "" {
		f.Value = DefaultFields.Value
	}
	return f
}

var (
	// ErrUnknownFormat is returned for record formats other than json and csv.
	ErrUnknownFormat = errors.New("unknown palette format")
	// ErrMissingField is returned when a CSV header lacks the value column.
	ErrMissingField = errors.New("missing palette field")
)

// ReadRecords reads palette rows in the given format, "json" or "csv".
func ReadRecords(r io.Reader, format string, fields FieldMap) ([]Record, error) {
	switch strings.ToLower(format) {
	case "json":
		return ReadRecordsJSON(r, fields)
	case "csv":
		return ReadRecordsCSV(r, fields)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// ReadRecordsJSON reads a JSON array of objects. Field values may be
// strings or numbers; missing fields become empty strings, which leaves
// the row to be rejected by NewPalette rather than failing the read.
func ReadRecordsJSON(r io.Reader, fields FieldMap) ([]Record, error) {
	fields = fields.withDefaults()

	dec := json.NewDecoder(r)
	dec.UseNumber()
	var rows []map[string]any
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("error decoding palette JSON: %w", err)
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, Record{
			Hex:  jsonFieldString(row[fields.Value]),
			ID:   jsonFieldString(row[fields.ID]),
			Name: jsonFieldString(row[fields.Name]),
		})
	}
	return records, nil
}

func jsonFieldString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// ReadRecordsCSV reads a CSV file whose first row is a header naming the
// columns. The value column is required; id and name are optional.
func ReadRecordsCSV(r io.Reader, fields FieldMap) ([]Record, error) {
	fields = fields.withDefaults()

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("error reading palette CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	valueCol, ok := cols[fields.Value]
	if !ok {
		return nil, fmt.Errorf("%w: %q not in CSV header", ErrMissingField, fields.Value)
	}
	idCol, hasID := cols[fields.ID]
	nameCol, hasName := cols[fields.Name]

	cell := func(row []string, i int, present bool) string {
		if !present || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return records, fmt.Errorf("error reading palette CSV row %d: %w", len(records)+1, err)
		}
		records = append(records, Record{
			Hex:  cell(row, valueCol, true),
			ID:   cell(row, idCol, hasID),
			Name: cell(row, nameCol, hasName),
		})
	}
	return records, nil
}

// LoadRecords loads palette rows by name. Embedded palettes (see
// EmbeddedPalettes) are tried first, then the filesystem, where fields
// names the columns. The file format follows the extension: ".csv" is
// CSV, anything else JSON.
func LoadRecords(name string, fields FieldMap) ([]Record, error) {
	for _, ext := range []string{".json", ".csv"} {
		data, err := colorFS.ReadFile("colordata/" + name + ext)
		if err != nil {
			continue
		}
		// Embedded palettes always use DefaultFields.
		return ReadRecords(bytes.NewReader(data), ext[1:], DefaultFields)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("error opening palette %q: %w", name, err)
	}
	defer f.Close()

	format := "json"
	if strings.EqualFold(filepath.Ext(name), ".csv") {
		format = "csv"
	}
	records, err := ReadRecords(f, format, fields)
	if err != nil {
		return nil, fmt.Errorf("error loading palette %q: %w", name, err)
	}
	return records, nil
}

// EmbeddedPalettes lists the names LoadRecords resolves without touching
// the filesystem.
func EmbeddedPalettes() []string {
	entries, err := fs.ReadDir(colorFS, "colordata")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

// WriteRecords writes palette rows in the given format, "json" or "csv",
// so that ReadRecords with the same fields reads them back.
func WriteRecords(w io.Writer, format string, records []Record, fields FieldMap) error {
	fields = fields.withDefaults()
	switch strings.ToLower(format) {
	case "json":
		rows := make([]map[string]string, 0, len(records))
		for _, rec := range records {
			rows = append(rows, map[string]string{
				fields.ID:    rec.ID,
				fields.Name:  rec.Name,
				fields.Value: rec.Hex,
			})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rows); err != nil {
			return fmt.Errorf("error encoding palette JSON: %w", err)
		}
		return nil
	case "csv":
		cw := csv.NewWriter(w)
		_ = cw.Write([]string{fields.ID, fields.Name, fields.Value})
		for _, rec := range records {
			_ = cw.Write([]string{rec.ID, rec.Name, rec.Hex})
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return fmt.Errorf("error writing palette CSV: %w", err)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
