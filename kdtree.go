package img2mosaic

import (
	"math"
	"sort"
)

// colorNode is a node in a k-d tree over palette colors. Each node keeps
// the palette index of its color so that searches can reproduce the
// lowest-index tie-break of a linear scan.
type colorNode struct {
	color       Color
	index       int
	left, right *colorNode
	splitAxis   int
}

type indexedColor struct {
	color Color
	index int
}

// buildKDTree constructs a k-d tree from the given palette entries. The
// slice is reordered in place.
func buildKDTree(entries []indexedColor) *colorNode {
	if len(entries) == 0 {
		return nil
	}

	// Split along the dimension with the largest variance.
	axis := chooseSplitAxis(entries)

	sort.SliceStable(entries, func(i, j int) bool {
		return getColorComponent(entries[i].color, axis) <
			getColorComponent(entries[j].color, axis)
	})

	median := len(entries) / 2
	return &colorNode{
		color:     entries[median].color,
		index:     entries[median].index,
		left:      buildKDTree(entries[:median]),
		right:     buildKDTree(entries[median+1:]),
		splitAxis: axis,
	}
}

// chooseSplitAxis returns the index of the channel with the largest
// variance: 0 for red, 1 for green, 2 for blue.
func chooseSplitAxis(entries []indexedColor) int {
	var varR, varG, varB float64
	var meanR, meanG, meanB float64

	for _, e := range entries {
		meanR += float64(e.color.R)
		meanG += float64(e.color.G)
		meanB += float64(e.color.B)
	}
	n := float64(len(entries))
	meanR /= n
	meanG /= n
	meanB /= n

	for _, e := range entries {
		varR += math.Pow(float64(e.color.R)-meanR, 2)
		varG += math.Pow(float64(e.color.G)-meanG, 2)
		varB += math.Pow(float64(e.color.B)-meanB, 2)
	}

	if varR > varG && varR > varB {
		return 0
	} else if varG > varB {
		return 1
	}
	return 2
}

// getColorComponent returns the channel of c selected by axis.
func getColorComponent(c Color, axis int) uint8 {
	switch axis {
	case 0:
		return c.R
	case 1:
		return c.G
	default:
		return c.B
	}
}

// kdCandidate is the best match found so far during a search.
type kdCandidate struct {
	index int
	dist  int
}

// nearestNeighbor returns the palette index of the entry closest to target
// under squared Euclidean RGB distance. Equal distances resolve to the
// lowest palette index. The tree must not be empty.
func (node *colorNode) nearestNeighbor(target Color) int {
	best := kdCandidate{index: -1, dist: math.MaxInt}
	node.search(target, &best)
	return best.index
}

func (node *colorNode) search(target Color, best *kdCandidate) {
	if node == nil {
		return
	}

	d := node.color.distanceSq(target)
	if d < best.dist || (d == best.dist && node.index < best.index) {
		best.index = node.index
		best.dist = d
	}

	diff := int(getColorComponent(target, node.splitAxis)) -
		int(getColorComponent(node.color, node.splitAxis))
	next, other := node.left, node.right
	if diff >= 0 {
		next, other = node.right, node.left
	}

	next.search(target, best)

	// Points across the split are at least diff away on this axis. Equality
	// still has to be visited: a tie there may carry a lower index.
	if diff*diff <= best.dist {
		other.search(target, best)
	}
}
