package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WriteChart renders the tile counts as a standalone HTML bar chart, one
// bar per tile drawn in the tile's own color.
func WriteChart(w io.Writer, d Document) error {
	labels := make([]string, 0, len(d.Tiles))
	data := make([]opts.BarData, 0, len(d.Tiles))
	for _, t := range d.Tiles {
		label := t.ID
		if t.Name != "" {
			label = fmt.Sprintf("%s %s", t.ID, t.Name)
		}
		labels = append(labels, label)
		data = append(data, opts.BarData{
			Name:      label,
			Value:     t.Count,
			ItemStyle: &opts.ItemStyle{Color: "#" + t.Hex, BorderColor: "#333333"},
		})
	}

	subtitle := fmt.Sprintf("%dx%d, %d tiles", d.Width, d.Height, d.Total())
	if d.Source != "" {
		subtitle = d.Source + ": " + subtitle
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Mosaic bill of materials", Width: "100%", Height: "720px"}),
		charts.WithTitleOpts(opts.Title{Title: "Bill of materials", Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Tile", AxisLabel: &opts.AxisLabel{Rotate: 45}}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Count"}),
	)
	bar.SetXAxis(labels).
		AddSeries("tiles", data,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("error rendering chart: %w", err)
	}
	return nil
}
