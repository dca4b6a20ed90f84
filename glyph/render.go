package glyph

import (
	"fmt"
	"image"
	"os"
	"strings"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/wbrown/img2mosaic/imageutil"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/math/fixed"
)

// Text is always drawn bold. Generic family names map to the bundled Go
// fonts; any other name is read as a TrueType file.
var builtinFonts = map[string][]byte{
	"serif":      gobold.TTF,
	"sans":       gobold.TTF,
	"sans-serif": gobold.TTF,
	"mono":       gomonobold.TTF,
	"monospace":  gomonobold.TTF,
}

var (
	fontsMu sync.Mutex
	fonts   = map[string]*truetype.Font{}
)

// BuiltinFonts lists the font names that need no file.
func BuiltinFonts() []string {
	return []string{"serif", "sans", "sans-serif", "mono", "monospace"}
}

func loadFont(name string) (*truetype.Font, error) {
	key := strings.ToLower(name)
	fontsMu.Lock()
	defer fontsMu.Unlock()
	if f, ok := fonts[key]; ok {
		return f, nil
	}

	data, ok := builtinFonts[key]
	if !ok {
		var err error
		if data, err = os.ReadFile(name); err != nil {
			return nil, fmt.Errorf("failed to read font %q: %w", name, err)
		}
		key = name
	}
	f, err := freetype.ParseFont(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %q: %w", name, err)
	}
	fonts[key] = f
	return f, nil
}

// LoadFace returns a face for the named font at size pixels. The caller
// closes it.
func LoadFace(name string, size float64) (font.Face, error) {
	f, err := loadFont(name)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// Render fills a GridWidth × GridHeight bitmap with the background and
// draws the text centered on it, horizontally by advance and vertically
// around the middle of the em box, shifted down by HeightOffset pixels.
// Text wider than the grid is clipped.
func Render(cfg Config) (*imageutil.RGBAImage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.WithDefaults()

	bg, _ := ParseColor(cfg.Background)
	fg, _ := ParseColor(cfg.Foreground)

	img := imageutil.NewRGBAImage(cfg.GridWidth, cfg.GridHeight)
	draw.Draw(img.RGBA, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	if cfg.Text == "" {
		return img, nil
	}

	face, err := LoadFace(cfg.Font, cfg.FontSize)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	d := &font.Drawer{
		Dst:  img.RGBA,
		Src:  image.NewUniform(fg),
		Face: face,
	}
	m := face.Metrics()
	d.Dot = fixed.Point26_6{
		X: fixed.I(cfg.GridWidth)/2 - d.MeasureString(cfg.Text)/2,
		Y: fixed.I(cfg.GridHeight)/2 + fixed.I(cfg.HeightOffset) + (m.Ascent-m.Descent)/2,
	}
	d.DrawString(cfg.Text)
	return img, nil
}
