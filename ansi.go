package img2mosaic

import (
	"strconv"
	"strings"
)

const esc = "\u001b"

// upperHalfBlock draws the foreground in the top half of a text cell and
// the background in the bottom half.
const upperHalfBlock = "▀"

type ansiCell struct {
	fg, bg string
	glyph  string
}

// RenderANSI renders g for a 24-bit color terminal, one line per text row
// terminated by a reset. Each cell is two spaces wide so tiles look
// square. With halfBlock, two grid rows share a text row: the upper row is
// the foreground of an upper half block and the lower row its background.
// Adjacent cells with identical codes share one escape sequence.
func RenderANSI(g *Grid, halfBlock bool) string {
	var b strings.Builder
	step := 1
	if halfBlock {
		step = 2
	}
	for row := 0; row < g.Height; row += step {
		var cur ansiCell
		count := 0
		for col := 0; col < g.Width; col++ {
			cell := ansiCell{bg: sgrColor(48, g.At(row, col)), glyph: "  "}
			if halfBlock {
				cell = ansiCell{fg: sgrColor(38, g.At(row, col)), bg: "49", glyph: upperHalfBlock}
				if row+1 < g.Height {
					cell.bg = sgrColor(48, g.At(row+1, col))
				}
			}
			if count > 0 && cell != cur {
				writeANSIRun(&b, cur, count)
				count = 0
			}
			cur = cell
			count++
		}
		if count > 0 {
			writeANSIRun(&b, cur, count)
		}
		b.WriteString(esc + "[0m\n")
	}
	return b.String()
}

func sgrColor(base int, c Color) string {
	return strconv.Itoa(base) + ";2;" + strconv.Itoa(int(c.R)) + ";" +
		strconv.Itoa(int(c.G)) + ";" + strconv.Itoa(int(c.B))
}

// writeANSIRun writes one escape sequence followed by count glyphs.
func writeANSIRun(b *strings.Builder, cell ansiCell, count int) {
	b.WriteString(esc)
	b.WriteByte('[')
	if cell.fg != "" {
		b.WriteString(cell.fg)
		if cell.bg != "" {
			b.WriteByte(';')
		}
	}
	b.WriteString(cell.bg)
	b.WriteByte('m')
	b.WriteString(strings.Repeat(cell.glyph, count))
}
