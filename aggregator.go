package img2mosaic

// TileCount is one line of a bill of materials: how many pixels resolved
// to the palette entry with the given ID.
type TileCount struct {
	ID    string
	Name  string
	Hex   string
	Count int
}

type tileEntry struct {
	color Color
	count int
}

// TileAggregator accumulates per-palette-entry pixel counts keyed by
// palette ID, remembering the order in which IDs were first seen.
//
// Counts are cumulative until Reset is called. Callers running more than
// one build pass must call Reset immediately before each pass; otherwise
// the counts of earlier passes are silently folded into the next export.
// Builder does this for you.
//
// A TileAggregator must not be shared between concurrent passes. The zero
// value is ready to use.
type TileAggregator struct {
	entries *OrderedMap[string, *tileEntry]
}

// NewTileAggregator returns an empty aggregator.
func NewTileAggregator() *TileAggregator {
	return &TileAggregator{entries: NewOrderedMap[string, *tileEntry]()}
}

// Record counts one pixel for id. The first time an id is seen, c is
// stored as the color reported for it on export.
func (a *TileAggregator) Record(id string, c Color) {
	if a.entries == nil {
		a.entries = NewOrderedMap[string, *tileEntry]()
	}
	if e, ok := a.entries.Get(id); ok {
		e.count++
		return
	}
	a.entries.Set(id, &tileEntry{color: c, count: 1})
}

// Reset discards all counts.
func (a *TileAggregator) Reset() {
	if a.entries != nil {
		a.entries.Clear()
	}
}

// Len returns the number of distinct ids recorded.
func (a *TileAggregator) Len() int {
	if a.entries == nil {
		return 0
	}
	return a.entries.Len()
}

// Total returns the sum of all counts.
func (a *TileAggregator) Total() int {
	total := 0
	if a.entries != nil {
		a.entries.Iterate(func(_ string, e *tileEntry) {
			total += e.count
		})
	}
	return total
}

// Export returns the bill of materials in first-seen order. The returned
// slice is a copy; it does not change when the aggregator does.
func (a *TileAggregator) Export() []TileCount {
	out := make([]TileCount, 0, a.Len())
	if a.entries == nil {
		return out
	}
	a.entries.Iterate(func(id string, e *tileEntry) {
		out = append(out, TileCount{
			ID:    id,
			Name:  e.color.Name,
			Hex:   RGBToHex(e.color),
			Count: e.count,
		})
	})
	return out
}
