package img2mosaic

import (
	"image/color"
	"math"
	"strconv"
)

// Color is an 8-bit RGB color as it appears in a palette. ID and Name are
// optional palette metadata; they ride along through nearest-color
// resolution so a resolved cell still knows which palette entry it is.
// An empty ID means the color is not a palette entry and must never be
// counted toward a bill of materials.
type Color struct {
	R, G, B uint8
	ID      string
	Name    string
}

// White is the fallback color returned when a palette has no usable
// entries. It carries no ID.
var White = Color{R: 255, G: 255, B: 255}

// HexToRGB parses an optional leading '#' followed by exactly six
// hexadecimal digits, two per channel. Any other shape yields ok == false.
// Parsing is case-insensitive.
func HexToRGB(text string) (c Color, ok bool) {
	if len(text) > 0 && text[0] == '#' {
		text = text[1:]
	}
	if len(text) != 6 {
		return Color{}, false
	}
	for i := 0; i < 6; i++ {
		if !isHexDigit(text[i]) {
			return Color{}, false
		}
	}
	v, err := strconv.ParseUint(text, 16, 32)
	if err != nil {
		return Color{}, false
	}
	return rgbFromUint32(uint32(v)), true
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// RGBToHex returns the six-digit lowercase hex form of c with no leading
// '#'. The channels are packed under a forced 25th bit which is then
// dropped, so small values keep their zero padding.
func RGBToHex(c Color) string {
	return strconv.FormatUint(uint64(1<<24|c.toUint32()), 16)[1:]
}

// toUint32 packs the channels into the low 24 bits.
func (c Color) toUint32() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// rgbFromUint32 unpacks the low 24 bits of v into a Color.
func rgbFromUint32(v uint32) Color {
	return Color{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}
}

// RGBA implements color.Color so grids can be drawn with image/draw.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}.RGBA()
}

// ColorFromStd converts any color.Color to a Color, dropping alpha.
func ColorFromStd(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// sameRGB reports whether a and b have identical channels, ignoring
// palette metadata.
func (c Color) sameRGB(other Color) bool {
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// distanceSq is the squared Euclidean distance between two colors in RGB
// space. It is exact in integers and orders colors exactly as the rooted
// distance does.
func (c Color) distanceSq(other Color) int {
	dr := int(c.R) - int(other.R)
	dg := int(c.G) - int(other.G)
	db := int(c.B) - int(other.B)
	return dr*dr + dg*dg + db*db
}

// Distance is the Euclidean distance between two colors in RGB space.
func (c Color) Distance(other Color) float64 {
	return math.Sqrt(float64(c.distanceSq(other)))
}
