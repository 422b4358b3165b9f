package board

import (
	"fmt"
	"math"
)

// bandRadii returns the inner and outer radius of a ring
func (l Layout) bandRadii(ring Ring) (inner, outer float64) {
	switch ring {
	case RingInnerBull:
		return 0, l.InnerBull
	case RingOuterBull:
		return l.InnerBull, l.OuterBull
	case RingInnerSingle:
		return l.OuterBull, l.TripleInner
	case RingTriple:
		return l.TripleInner, l.TripleOuter
	case RingOuterSingle:
		return l.TripleOuter, l.DoubleInner
	case RingDouble:
		return l.DoubleInner, l.DoubleOuter
	}
	return 0, 0
}

// Radius returns the outer radius of a ring
func (l Layout) Radius(ring Ring) float64 {
	_, outer := l.bandRadii(ring)
	return outer
}

// MidRadius returns the radius halfway across a ring
func (l Layout) MidRadius(ring Ring) float64 {
	inner, outer := l.bandRadii(ring)
	return (inner + outer) / 2
}

// SectorPath returns the SVG path of one wedge of a numbered ring drawn
// around (cx, cy). Bull rings are circles and have no wedge path.
func (l Layout) SectorPath(cx, cy float64, index int, ring Ring) string {
	if ring.IsBull() {
		return ""
	}
	inner, outer := l.bandRadii(ring)
	if outer == 0 {
		return ""
	}

	// SVG angles run clockwise from the positive x axis, so rotate by -90
	start := float64(index)*sectorAngle - sectorAngle/2 - 90
	end := start + sectorAngle
	startRad := start * math.Pi / 180
	endRad := end * math.Pi / 180

	x1, y1 := cx+inner*math.Cos(startRad), cy+inner*math.Sin(startRad)
	x2, y2 := cx+outer*math.Cos(startRad), cy+outer*math.Sin(startRad)
	x3, y3 := cx+outer*math.Cos(endRad), cy+outer*math.Sin(endRad)
	x4, y4 := cx+inner*math.Cos(endRad), cy+inner*math.Sin(endRad)

	return fmt.Sprintf("M %.2f %.2f L %.2f %.2f A %.2f %.2f 0 0 1 %.2f %.2f L %.2f %.2f A %.2f %.2f 0 0 0 %.2f %.2f Z",
		x1, y1, x2, y2, outer, outer, x3, y3, x4, y4, inner, inner, x1, y1)
}

// NumberPosition returns where the label of wedge index is drawn
func (l Layout) NumberPosition(cx, cy float64, index int) (x, y float64) {
	angle := (float64(index)*sectorAngle - 90) * math.Pi / 180
	radius := l.DoubleOuter * 1.12
	return cx + radius*math.Cos(angle), cy + radius*math.Sin(angle)
}
