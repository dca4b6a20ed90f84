package img2mosaic

import "github.com/lucasb-eyer/go-colorful"

// DistanceMetric measures how far apart two colors are. Only the order of
// the returned values matters to palette lookups, so a metric may skip a
// final square root.
type DistanceMetric interface {
	Name() string
	Distance(a, b Color) float64
}

// RGBMetric is plain Euclidean distance in RGB space, compared squared.
// This is the default and the only metric the k-d tree accelerates.
type RGBMetric struct{}

func (RGBMetric) Name() string { return "rgb" }

func (RGBMetric) Distance(a, b Color) float64 {
	return float64(a.distanceSq(b))
}

// RedmeanMetric is the low-cost weighted RGB approximation of perceived
// difference, weighting red and blue by the mean red level.
type RedmeanMetric struct{}

func (RedmeanMetric) Name() string { return "redmean" }

func (RedmeanMetric) Distance(a, b Color) float64 {
	rMean := (float64(a.R) + float64(b.R)) / 2
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return (2+rMean/256)*dr*dr + 4*dg*dg + (2+(255-rMean)/256)*db*db
}

// LabMetric is Euclidean distance in CIELAB.
type LabMetric struct{}

func (LabMetric) Name() string { return "lab" }

func (LabMetric) Distance(a, b Color) float64 {
	return toColorful(a).DistanceLab(toColorful(b))
}

func toColorful(c Color) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// MetricByName resolves "rgb", "redmean" or "lab".
func MetricByName(name string) (DistanceMetric, bool) {
	switch name {
	case "rgb", "":
		return RGBMetric{}, true
	case "redmean":
		return RedmeanMetric{}, true
	case "lab":
		return LabMetric{}, true
	}
	return nil, false
}

// isEuclideanRGB reports whether m orders colors like RGBMetric.
func isEuclideanRGB(m DistanceMetric) bool {
	_, ok := m.(RGBMetric)
	return ok
}
