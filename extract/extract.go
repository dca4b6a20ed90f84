// Package extract suggests palette records from the colors of an image.
package extract

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"github.com/wbrown/img2mosaic"
	"gonum.org/v1/gonum/stat"
)

// Method selects the color extraction algorithm.
type Method int

const (
	MethodDominant Method = iota
	MethodKMeans
)

func (m Method) String() string {
	switch m {
	case MethodKMeans:
		return "kmeans"
	default:
		return "dominant"
	}
}

// ParseMethod maps "dominant" and "kmeans" to a Method.
func ParseMethod(name string) (Method, error) {
	switch name {
	case "dominant", "":
		return MethodDominant, nil
	case "kmeans":
		return MethodKMeans, nil
	}
	return MethodDominant, fmt.Errorf("unknown extraction method %q", name)
}

// Swatch is an extracted color and the share of the image it stands for.
type Swatch struct {
	Color  colorful.Color
	Weight float64
}

// maxSamples bounds the k-means dataset.
const maxSamples = 12000

// Dominant finds up to k visually distinct dominant colors.
func Dominant(img image.Image, k int) []Swatch {
	if k <= 0 || img.Bounds().Empty() {
		return nil
	}

	candidates := dominantcolor.FindWeight(img, max(24, k*8))
	swatches := make([]Swatch, 0, len(candidates))
	for _, c := range candidates {
		col, _ := colorful.MakeColor(c.RGBA)
		swatches = append(swatches, Swatch{Color: col.Clamped(), Weight: max(c.Weight, 1e-6)})
	}
	return diverse(swatches, k)
}

// KMeans clusters the opaque pixels of img in RGB and returns up to k
// cluster centers, most populous first. Weights are pixel counts of the
// subsampled dataset.
func KMeans(img image.Image, k int) ([]Swatch, error) {
	if k <= 0 {
		return nil, nil
	}

	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return nil, nil
	}
	step := 1
	if width*height > maxSamples {
		step = int(math.Sqrt(float64(width*height)/float64(maxSamples))) + 1
	}

	dataset := make(clusters.Observations, 0, min(width*height, maxSamples))
	distinct := make(map[[3]uint32]struct{})
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			r, g, bl, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			distinct[[3]uint32{r, g, bl}] = struct{}{}
			dataset = append(dataset, clusters.Coordinates{
				float64(r) / 0xffff,
				float64(g) / 0xffff,
				float64(bl) / 0xffff,
			})
		}
	}
	if len(dataset) == 0 {
		return nil, nil
	}

	cc, err := kmeans.New().Partition(dataset, min(k, len(distinct)))
	if err != nil {
		return nil, fmt.Errorf("k-means partition failed: %w", err)
	}
	slices.SortStableFunc(cc, func(a, b clusters.Cluster) int {
		return len(b.Observations) - len(a.Observations)
	})

	swatches := make([]Swatch, 0, len(cc))
	for _, c := range cc {
		if len(c.Observations) == 0 {
			continue
		}
		swatches = append(swatches, Swatch{
			Color:  meanColor(c.Observations),
			Weight: float64(len(c.Observations)),
		})
	}
	return swatches, nil
}

// meanColor averages the observations of a cluster. Partition can stop
// before its final recenter, so Cluster.Center is not used.
func meanColor(obs clusters.Observations) colorful.Color {
	var ch [3][]float64
	for _, o := range obs {
		c := o.Coordinates()
		for i := range ch {
			ch[i] = append(ch[i], c[i])
		}
	}
	return colorful.Color{
		R: stat.Mean(ch[0], nil),
		G: stat.Mean(ch[1], nil),
		B: stat.Mean(ch[2], nil),
	}.Clamped()
}

// diverse greedily picks k swatches, seeded with the heaviest and then
// maximizing CIELAB distance to those already picked, scaled by weight.
func diverse(cands []Swatch, k int) []Swatch {
	if len(cands) == 0 {
		return nil
	}
	k = min(k, len(cands))

	maxW := 0.0
	seed := 0
	for i, c := range cands {
		if c.Weight > maxW {
			maxW, seed = c.Weight, i
		}
	}

	picked := []int{seed}
	used := make([]bool, len(cands))
	used[seed] = true
	for len(picked) < k {
		best, bestScore := -1, -1.0
		for i, c := range cands {
			if used[i] {
				continue
			}
			minD := math.MaxFloat64
			for _, p := range picked {
				minD = min(minD, c.Color.DistanceLab(cands[p].Color))
			}
			score := minD * (0.55 + 0.45*math.Sqrt(c.Weight/maxW))
			if score > bestScore {
				best, bestScore = i, score
			}
		}
		used[best] = true
		picked = append(picked, best)
	}

	out := make([]Swatch, len(picked))
	for i, p := range picked {
		out[i] = cands[p]
	}
	return out
}

// Records extracts k colors with the given method and turns them into
// palette records with IDs "c1", "c2", and so on. Zero channels are raised
// to 1 so every record is admitted by img2mosaic.NewPalette.
func Records(img image.Image, k int, method Method) ([]img2mosaic.Record, error) {
	var swatches []Swatch
	switch method {
	case MethodKMeans:
		var err error
		if swatches, err = KMeans(img, k); err != nil {
			return nil, err
		}
	default:
		swatches = Dominant(img, k)
	}

	records := make([]img2mosaic.Record, 0, len(swatches))
	for i, s := range swatches {
		r, g, b := s.Color.RGB255()
		c := img2mosaic.Color{R: max(r, 1), G: max(g, 1), B: max(b, 1)}
		hex := img2mosaic.RGBToHex(c)
		records = append(records, img2mosaic.Record{
			Hex:  "#" + hex,
			ID:   fmt.Sprintf("c%d", i+1),
			Name: nearestName(c),
		})
	}
	return records, nil
}

// ToColor converts a swatch to an opaque color.RGBA.
func (s Swatch) ToColor() color.RGBA {
	r, g, b := s.Color.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
