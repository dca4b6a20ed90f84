package extract

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/wbrown/img2mosaic"
	"golang.org/x/image/colornames"
)

// nearestName returns the CSS color name closest to c in CIELAB.
func nearestName(c img2mosaic.Color) string {
	target, _ := colorful.MakeColor(c)
	best, bestD := "", math.MaxFloat64
	for _, name := range colornames.Names {
		cand, _ := colorful.MakeColor(colornames.Map[name])
		if d := target.DistanceLab(cand); d < bestD {
			best, bestD = name, d
		}
	}
	return best
}
