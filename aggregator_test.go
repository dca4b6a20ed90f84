package img2mosaic

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTileAggregatorRecordAndExport(t *testing.T) {
	t.Parallel()

	red := Color{R: 0xc9, G: 0x1a, B: 0x09, ID: "5", Name: "Red"}
	black := Color{R: 5, G: 0x13, B: 0x1d, ID: "11", Name: "Black"}

	agg := NewTileAggregator()
	agg.Record(black.ID, black)
	agg.Record(red.ID, red)
	agg.Record(black.ID, black)
	agg.Record(black.ID, black)

	want := []TileCount{
		{ID: "11", Name: "Black", Hex: "05131d", Count: 3},
		{ID: "5", Name: "Red", Hex: "c91a09", Count: 1},
	}
	if diff := cmp.Diff(want, agg.Export()); diff != "" {
		t.Errorf("export mismatch (-want +got):\n%s", diff)
	}
	if agg.Len() != 2 {
		t.Errorf("Expected 2 entries, got %d", agg.Len())
	}
	if agg.Total() != 4 {
		t.Errorf("Expected total 4, got %d", agg.Total())
	}
}

func TestTileAggregatorKeepsFirstColor(t *testing.T) {
	t.Parallel()

	var agg TileAggregator
	agg.Record("x", Color{R: 1, G: 2, B: 3, Name: "first"})
	agg.Record("x", Color{R: 9, G: 9, B: 9, Name: "second"})

	got := agg.Export()
	want := []TileCount{{ID: "x", Name: "first", Hex: "010203", Count: 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("export mismatch (-want +got):\n%s", diff)
	}
}

func TestTileAggregatorReset(t *testing.T) {
	t.Parallel()

	agg := NewTileAggregator()
	agg.Record("a", Color{R: 1, G: 1, B: 1})
	agg.Record("b", Color{R: 2, G: 2, B: 2})
	agg.Reset()

	if agg.Len() != 0 || agg.Total() != 0 || len(agg.Export()) != 0 {
		t.Fatalf("Expected empty aggregator after Reset, got %+v", agg.Export())
	}

	agg.Record("b", Color{R: 2, G: 2, B: 2})
	agg.Record("a", Color{R: 1, G: 1, B: 1})
	got := agg.Export()
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "a" {
		t.Errorf("Expected first-seen order to restart after Reset, got %+v", got)
	}
}

func TestTileAggregatorZeroValue(t *testing.T) {
	t.Parallel()

	var agg TileAggregator
	agg.Reset()
	if agg.Len() != 0 || agg.Total() != 0 {
		t.Error("Expected zero value to be empty")
	}
	if got := agg.Export(); got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil export, got %#v", got)
	}
}

func TestTileAggregatorExportIsSnapshot(t *testing.T) {
	t.Parallel()

	agg := NewTileAggregator()
	agg.Record("a", Color{R: 1, G: 1, B: 1})
	snap := agg.Export()
	agg.Record("a", Color{R: 1, G: 1, B: 1})

	if snap[0].Count != 1 {
		t.Errorf("Expected exported snapshot to stay at 1, got %d", snap[0].Count)
	}
}
