package img2mosaic

import (
	"log/slog"
	"math"
)

// defaultKdThreshold is the palette size from which Euclidean RGB lookups
// go through a k-d tree instead of a linear scan.
const defaultKdThreshold = 64

// Palette is an ordered, validated set of colors that pixels may be
// quantized to. Order matters: when two entries are equally close to a
// pixel, the one with the lower index wins. A Palette is immutable after
// construction and may be shared by concurrent readers.
type Palette struct {
	colors   []Color
	metric   DistanceMetric
	tree     *colorNode
	rejected int
}

// Option configures palette construction and builders.
type Option func(*settings)

type settings struct {
	metric      DistanceMetric
	kdThreshold int
	logger      *slog.Logger
}

func newSettings(opts []Option) settings {
	s := settings{
		metric:      RGBMetric{},
		kdThreshold: defaultKdThreshold,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithMetric sets the color distance used for nearest-color lookups.
func WithMetric(m DistanceMetric) Option {
	return func(s *settings) {
		if m != nil {
			s.metric = m
		}
	}
}

// WithKdSearch sets the minimum palette size at which lookups use a k-d
// tree. Zero or less disables the tree. The tree is only used with
// RGBMetric.
func WithKdSearch(minSize int) Option {
	return func(s *settings) {
		s.kdThreshold = minSize
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewPalette builds a palette from external records, keeping their order.
//
// A record is admitted only if its hex value parses and none of its three
// channels is exactly zero. Colors such as pure red (ff0000) or black
// (000000) are therefore treated as unset and dropped. This matches the
// behavior existing palettes were authored against. Rejected records are
// not errors; they are logged at debug level and counted in Rejected.
func NewPalette(records []Record, opts ...Option) *Palette {
	s := newSettings(opts)
	colors := make([]Color, 0, len(records))
	rejected := 0
	for i, rec := range records {
		c, ok := HexToRGB(rec.Hex)
		if !ok {
			rejected++
			s.logger.Debug("palette record rejected", "index", i, "id", rec.ID,
				"hex", rec.Hex, "reason", "invalid hex")
			continue
		}
		if c.R == 0 || c.G == 0 || c.B == 0 {
			rejected++
			s.logger.Debug("palette record rejected", "index", i, "id", rec.ID,
				"hex", rec.Hex, "reason", "zero channel")
			continue
		}
		c.ID = rec.ID
		c.Name = rec.Name
		colors = append(colors, c)
	}

	p := newPalette(colors, s)
	p.rejected = rejected
	s.logger.Debug("palette built", "records", len(records), "admitted", len(colors),
		"rejected", rejected, "metric", s.metric.Name(), "kdtree", p.tree != nil)
	return p
}

// NewPaletteFromColors builds a palette from colors that are already
// valid. No entries are filtered.
func NewPaletteFromColors(colors []Color, opts ...Option) *Palette {
	return newPalette(append([]Color(nil), colors...), newSettings(opts))
}

func newPalette(colors []Color, s settings) *Palette {
	p := &Palette{
		colors: colors,
		metric: s.metric,
	}
	if s.kdThreshold > 0 && len(colors) >= s.kdThreshold && isEuclideanRGB(s.metric) {
		entries := make([]indexedColor, len(colors))
		for i, c := range colors {
			entries[i] = indexedColor{color: c, index: i}
		}
		p.tree = buildKDTree(entries)
	}
	return p
}

// Len returns the number of usable entries.
func (p *Palette) Len() int {
	if p == nil {
		return 0
	}
	return len(p.colors)
}

// Colors returns a copy of the usable entries in order.
func (p *Palette) Colors() []Color {
	if p == nil {
		return nil
	}
	return append([]Color(nil), p.colors...)
}

// Rejected returns how many records NewPalette dropped.
func (p *Palette) Rejected() int {
	if p == nil {
		return 0
	}
	return p.rejected
}

// Metric returns the distance metric used for lookups.
func (p *Palette) Metric() DistanceMetric {
	if p == nil || p.metric == nil {
		return RGBMetric{}
	}
	return p.metric
}

// NearestIndex returns the index of the entry closest to px, or false if
// the palette is empty. The lowest index wins among equally close
// entries.
func (p *Palette) NearestIndex(px Color) (int, bool) {
	if p.Len() == 0 {
		return -1, false
	}
	if p.tree != nil {
		return p.tree.nearestNeighbor(px), true
	}

	metric := p.Metric()
	best, bestDist := 0, math.Inf(1)
	for i, c := range p.colors {
		d := metric.Distance(px, c)
		if d < bestDist {
			best, bestDist = i, d
			if d == 0 {
				break
			}
		}
	}
	return best, true
}

// Nearest returns the palette entry closest to px, including its ID and
// Name. An empty palette yields White, which has no ID.
func (p *Palette) Nearest(px Color) Color {
	i, ok := p.NearestIndex(px)
	if !ok {
		return White
	}
	return p.colors[i]
}
