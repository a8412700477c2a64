package rasterpipe

import "math"

// edgeIntersectionSlack is the epsilon tolerance applied when deciding
// whether a scanline/edge intersection lies within the edge's segment.
const edgeIntersectionSlack = 0.001

// polygonEdge is one side of a rasterized triangle, used to find its
// intersection with a horizontal scanline.
type polygonEdge struct {
	x1, y1, x2, y2     float32
	minX, maxX         float32
	minY, maxY         float32
}

func newPolygonEdge(x1, y1, x2, y2 float32) polygonEdge {
	e := polygonEdge{x1: x1, y1: y1, x2: x2, y2: y2}
	if x1 < x2 {
		e.minX, e.maxX = x1, x2
	} else {
		e.minX, e.maxX = x2, x1
	}
	if y1 < y2 {
		e.minY, e.maxY = y1, y2
	} else {
		e.minY, e.maxY = y2, y1
	}
	return e
}

func (e polygonEdge) withinSegment(x, y float32) bool {
	return e.minX-edgeIntersectionSlack <= x && x <= e.maxX+edgeIntersectionSlack &&
		e.minY-edgeIntersectionSlack <= y && y <= e.maxY+edgeIntersectionSlack
}

// intersectScanline returns the edge's intersection x with the horizontal
// line y = scanlineY, and whether one exists. Edges parallel to the
// scanline (y1 == y2) never intersect; vertical edges (x1 == x2) intersect
// only if scanlineY falls in range.
func (e polygonEdge) intersectScanline(scanlineY float32) (x float32, ok bool) {
	if e.y2-e.y1 == 0 {
		return 0, false
	}
	if e.x2-e.x1 == 0 {
		if e.withinSegment(e.x2, scanlineY) {
			return e.x2, true
		}
		return 0, false
	}

	k := float64(e.y2-e.y1) / float64(e.x2-e.x1)
	b := float64(e.y1*e.x2-e.y2*e.x1) / float64(e.x2-e.x1)
	xf := (float64(scanlineY) - b) / k

	if e.withinSegment(float32(xf), scanlineY) {
		return float32(xf), true
	}
	return 0, false
}

// scanlineIntersections returns every x where one of the triangle's three
// edges crosses y = scanlineY. A stray third intersection (the scanline
// passes exactly through a shared vertex) is collapsed per the duplicate-
// drop rule: if the first two are within 0.1px of each other, drop the
// first; else if the last two are close, drop the middle.
func scanlineIntersections(edges [3]polygonEdge, scanlineY float32) []float32 {
	var xs []float32
	for _, e := range edges {
		if x, ok := e.intersectScanline(scanlineY); ok {
			xs = append(xs, x)
		}
	}
	sortFloat32s(xs)

	if len(xs) == 3 {
		const dupSlack = 0.1
		if absF32(xs[0]-xs[1]) < dupSlack {
			xs = xs[1:]
		} else if absF32(xs[1]-xs[2]) < dupSlack {
			xs = []float32{xs[0], xs[2]}
		}
	}
	return xs
}

func sortFloat32s(xs []float32) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}

func absF32(f float32) float32 {
	return float32(math.Abs(float64(f)))
}
