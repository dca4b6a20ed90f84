package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbrown/img2mosaic"
	"github.com/wbrown/img2mosaic/imageutil"
)

// runCLI parses args and runs the selected command, returning stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var cli CLI
	parser, err := newParser(&cli,
		kong.Writers(io.Discard, io.Discard),
		kong.Exit(func(code int) { t.Fatalf("unexpected exit %d", code) }))
	require.NoError(t, err)

	kctx, err := parser.Parse(args)
	if err != nil {
		return "", err
	}

	var out, errOut bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	err = kctx.Run(logger, &streams{out: &out, errOut: &errOut})
	return out.String(), err
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func sumCounts(t *testing.T, rows [][]string) int {
	t.Helper()
	total := 0
	for _, row := range rows {
		n, err := strconv.Atoi(row[3])
		require.NoError(t, err)
		total += n
	}
	return total
}

func writeImage(t *testing.T, path string, img *imageutil.RGBAImage) {
	t.Helper()
	require.NoError(t, imageutil.SaveImage(img, path))
}

func TestTextCommandWritesCSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bom.csv")
	_, err := runCLI(t, "text", "Hi", "--palette", "grayscale", "-o", path)
	require.NoError(t, err)

	rows := readCSV(t, path)
	require.Greater(t, len(rows), 2)
	assert.Equal(t, []string{"colorId", "colorName", "colorValue", "quantity"}, rows[0])
	assert.Equal(t, []string{"g1", "White", "ffffff"}, rows[1][:3], "the background is seen first")
	assert.Equal(t, 48*48, sumCounts(t, rows[1:]))
}

func TestTextCommandJSONFieldNames(t *testing.T) {
	t.Parallel()

	out, err := runCLI(t, "text", "A", "-p", "grayscale",
		"--grid-width", "20", "--grid-height", "10", "--font-size", "8",
		"--tile-id-field", "blid", "--tile-quantity-field", "qty")
	require.NoError(t, err)

	var doc struct {
		Width  int              `json:"width"`
		Height int              `json:"height"`
		Total  int              `json:"total"`
		Tiles  []map[string]any `json:"tiles"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 20, doc.Width)
	assert.Equal(t, 10, doc.Height)
	assert.Equal(t, 200, doc.Total)
	require.NotEmpty(t, doc.Tiles)
	assert.Equal(t, "g1", doc.Tiles[0]["blid"])
	assert.Contains(t, doc.Tiles[0], "qty")
	assert.Contains(t, doc.Tiles[0], "colorValue")
}

func TestTextCommandEmptyText(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bom.csv")
	_, err := runCLI(t, "text", "-p", "grayscale", "--grid-width", "4", "--grid-height", "3", "-o", path)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"colorId", "colorName", "colorValue", "quantity"},
		{"g1", "White", "ffffff", "12"},
	}, readCSV(t, path))
}

func TestImageCommandWithPreview(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "bars.png")
	writeImage(t, input, imageutil.CreateColorBarsImage(80, 10))
	preview := filepath.Join(dir, "preview.png")
	bom := filepath.Join(dir, "bom.html")

	_, err := runCLI(t, "image", input, "--width", "8", "--height", "1",
		"--preview", preview, "--cell-size", "4", "-o", bom)
	require.NoError(t, err)

	img, err := imageutil.LoadImage(preview)
	require.NoError(t, err)
	assert.Equal(t, 32, img.Width())
	assert.Equal(t, 4, img.Height())

	html, err := os.ReadFile(bom)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Bill of materials")
}

func TestBatchCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeImage(t, filepath.Join(dir, "a.png"), imageutil.CreateCheckerboardImage(16, 16, 4))
	writeImage(t, filepath.Join(dir, "b.bmp"), imageutil.CreateGradientImage(32, 16))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o644))

	_, err := runCLI(t, "batch", dir, "-p", "grayscale", "--width", "4", "--preview",
		"--workers", "2", "--format", "csv", "--tile-quantity-field", "count")
	require.NoError(t, err)

	dest := filepath.Join(dir, "mosaics")
	entries, err := os.ReadDir(dest)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"a.bom.csv", "a.png", "b.bom.csv", "b.png"}, names)

	rows := readCSV(t, filepath.Join(dest, "a.bom.csv"))
	assert.Equal(t, "count", rows[0][3])
	assert.Equal(t, 16, sumCounts(t, rows[1:]))

	rows = readCSV(t, filepath.Join(dest, "b.bom.csv"))
	assert.Equal(t, 8, sumCounts(t, rows[1:]))
}

func TestBatchCommandReportsFailures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.png"), []byte("not a png"), 0o644))

	_, err := runCLI(t, "batch", dir, "-p", "grayscale", "--workers", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 files")
}

func TestExtractThenUsePalette(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "two.png")
	img := imageutil.NewRGBAImage(8, 8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			c := img2mosaic.Color{R: 200, G: 30, B: 20}
			if x >= 4 {
				c = img2mosaic.Color{R: 20, G: 40, B: 220}
			}
			img.SetColor(x, y, c)
		}
	}
	writeImage(t, input, img)

	palette := filepath.Join(dir, "palette.csv")
	_, err := runCLI(t, "extract", input, "-k", "1", "--method", "kmeans", "--format", "csv", "-o", palette)
	require.NoError(t, err)

	records, err := img2mosaic.LoadRecords(palette, img2mosaic.DefaultFields)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "c1", records[0].ID)
	assert.Equal(t, "#6e2378", records[0].Hex)

	bom := filepath.Join(dir, "bom.csv")
	_, err = runCLI(t, "image", input, "--width", "8", "-p", palette, "-o", bom)
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", records[0].Name, "6e2378", "64"}, readCSV(t, bom)[1])
}

func TestExtractToStdout(t *testing.T) {
	t.Parallel()

	input := filepath.Join(t.TempDir(), "solid.png")
	writeImage(t, input, imageutil.CreateSolidImage(4, 4, img2mosaic.Color{R: 10, G: 20, B: 30}))

	out, err := runCLI(t, "extract", input, "-k", "1", "--method", "kmeans")
	require.NoError(t, err)
	records, err := img2mosaic.ReadRecordsJSON(strings.NewReader(out), img2mosaic.DefaultFields)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "#0a141e", records[0].Hex)
}

func TestPalettesCommand(t *testing.T) {
	t.Parallel()

	out, err := runCLI(t, "palettes")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"NAME", "COLORS", "REJECTED"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"bricklink", "23", "1"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"grayscale", "5", "0"}, strings.Fields(lines[2]))
}

func TestConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	config := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(config, []byte(`{"palette": "grayscale", "grid_width": "5", "grid_height": "2"}`), 0o644))

	path := filepath.Join(dir, "bom.csv")
	_, err := runCLI(t, "--config", config, "text", "-o", path)
	require.NoError(t, err)
	assert.Equal(t, []string{"g1", "White", "ffffff", "10"}, readCSV(t, path)[1])
}

func TestValidationErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "in.png")
	writeImage(t, input, imageutil.CreateSolidImage(2, 2, img2mosaic.White))

	testCases := []struct {
		name string
		args []string
	}{
		{"negative grid", []string{"text", "x", "--grid-width", "-1"}},
		{"bad text color", []string{"text", "x", "--color", "blurple"}},
		{"no dimensions", []string{"image", input, "--width", "0", "--height", "0"}},
		{"duplicate report fields", []string{"image", input, "--tile-id-field", "quantity"}},
		{"bad cell size", []string{"image", input, "--cell-size", "0"}},
		{"unknown metric", []string{"image", input, "--metric", "cie2000"}},
		{"missing palette", []string{"image", input, "-p", filepath.Join(dir, "nope.json")}},
		{"no colors", []string{"extract", input, "-k", "0"}},
		{"missing input", []string{"image", filepath.Join(dir, "missing.png")}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := runCLI(t, tc.args...)
			assert.Error(t, err)
		})
	}
}

func TestEmptyPaletteIsAnError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	palette := filepath.Join(dir, "zeros.json")
	require.NoError(t, os.WriteFile(palette, []byte(`[{"id": "k", "hex": "#000000"}]`), 0o644))

	_, err := runCLI(t, "text", "x", "-p", palette)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no usable colors")
}
