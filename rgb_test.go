package img2mosaic

import (
	"image/color"
	"strings"
	"testing"
)

func TestHexToRGB(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		input string
		want  Color
		ok    bool
	}{
		{"with hash", "#c91a09", Color{R: 0xc9, G: 0x1a, B: 0x09}, true},
		{"without hash", "c91a09", Color{R: 0xc9, G: 0x1a, B: 0x09}, true},
		{"upper case", "#C91A09", Color{R: 0xc9, G: 0x1a, B: 0x09}, true},
		{"mixed case", "fFfFfE", Color{R: 255, G: 255, B: 254}, true},
		{"black", "000000", Color{}, true},
		{"empty", "", Color{}, false},
		{"hash only", "#", Color{}, false},
		{"short form", "#abc", Color{}, false},
		{"too long", "#c91a0900", Color{}, false},
		{"double hash", "##c91a09", Color{}, false},
		{"non hex digit", "#c91a0g", Color{}, false},
		{"hex prefix", "0xc91a", Color{}, false},
		{"sign", "+c91a0", Color{}, false},
		{"surrounding space", " c91a09", Color{}, false},
		{"css name", "yellow", Color{}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := HexToRGB(tc.input)
			if ok != tc.ok {
				t.Fatalf("HexToRGB(%q) ok = %v, expected %v", tc.input, ok, tc.ok)
			}
			if got != tc.want {
				t.Errorf("HexToRGB(%q) = %+v, expected %+v", tc.input, got, tc.want)
			}
		})
	}
}

func TestRGBToHex(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input Color
		want  string
	}{
		{Color{R: 0, G: 0, B: 0}, "000000"},
		{Color{R: 0, G: 0, B: 1}, "000001"},
		{Color{R: 1, G: 2, B: 3}, "010203"},
		{Color{R: 255, G: 255, B: 254}, "fffffe"},
		{Color{R: 0xc9, G: 0x1a, B: 0x09, ID: "5", Name: "Red"}, "c91a09"},
	}

	for _, tc := range testCases {
		if got := RGBToHex(tc.input); got != tc.want {
			t.Errorf("RGBToHex(%+v) = %q, expected %q", tc.input, got, tc.want)
		}
	}
}

func TestHexRoundTrip(t *testing.T) {
	t.Parallel()

	// Walk every channel value on each axis plus the diagonal.
	for v := 0; v < 256; v++ {
		for _, c := range []Color{
			{R: uint8(v)},
			{G: uint8(v)},
			{B: uint8(v)},
			{R: uint8(v), G: uint8(255 - v), B: uint8(v / 2)},
		} {
			got, ok := HexToRGB(RGBToHex(c))
			if !ok || got != c {
				t.Fatalf("round trip of %+v gave %+v (ok=%v)", c, got, ok)
			}
		}
	}

	for _, h := range []string{"#ABCDEF", "abcdef", "#0A0b0C", "FFFFFF"} {
		c, ok := HexToRGB(h)
		if !ok {
			t.Fatalf("HexToRGB(%q) failed", h)
		}
		want := strings.ToLower(strings.TrimPrefix(h, "#"))
		if got := RGBToHex(c); got != want {
			t.Errorf("RGBToHex(HexToRGB(%q)) = %q, expected %q", h, got, want)
		}
	}
}

func TestColorStdConversion(t *testing.T) {
	t.Parallel()

	c := Color{R: 10, G: 20, B: 30, ID: "x"}
	std := color.RGBAModel.Convert(c).(color.RGBA)
	if std != (color.RGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("Expected opaque RGBA, got %+v", std)
	}

	back := ColorFromStd(std)
	if !back.sameRGB(c) || back.ID != "" {
		t.Errorf("Expected channels of %+v without metadata, got %+v", c, back)
	}
}

func TestColorDistance(t *testing.T) {
	t.Parallel()

	a := Color{R: 0, G: 0, B: 0}
	b := Color{R: 3, G: 4, B: 0}
	if d := a.distanceSq(b); d != 25 {
		t.Errorf("Expected squared distance 25, got %d", d)
	}
	if d := a.Distance(b); d != 5 {
		t.Errorf("Expected distance 5, got %f", d)
	}
	if d := b.Distance(b); d != 0 {
		t.Errorf("Expected zero self distance, got %f", d)
	}
}
