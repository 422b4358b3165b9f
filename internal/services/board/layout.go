package board

import (
	"math"

	"github.com/mcoot/dartscore-go/internal/model"
)

// sectorAngle is the arc each wedge spans, in degrees
const sectorAngle = 360.0 / SectorCount

// Layout holds the outer radius of each band, measured from the board centre
type Layout struct {
	InnerBull   float64
	OuterBull   float64
	TripleInner float64
	TripleOuter float64
	DoubleInner float64
	DoubleOuter float64
}

// DefaultLayout returns the proportions of the rendered board (480px canvas)
func DefaultLayout() Layout {
	return Layout{
		InnerBull:   10,
		OuterBull:   25,
		TripleInner: 98,
		TripleOuter: 110,
		DoubleInner: 188,
		DoubleOuter: 205,
	}
}

// Scale returns the layout resized so the outer double edge sits at radius
func (l Layout) Scale(radius float64) Layout {
	if l.DoubleOuter == 0 {
		return l
	}
	f := radius / l.DoubleOuter
	return Layout{
		InnerBull:   l.InnerBull * f,
		OuterBull:   l.OuterBull * f,
		TripleInner: l.TripleInner * f,
		TripleOuter: l.TripleOuter * f,
		DoubleInner: l.DoubleInner * f,
		DoubleOuter: radius,
	}
}

// Valid returns true when the bands are strictly increasing and positive
func (l Layout) Valid() bool {
	return 0 < l.InnerBull &&
		l.InnerBull < l.OuterBull &&
		l.OuterBull < l.TripleInner &&
		l.TripleInner < l.TripleOuter &&
		l.TripleOuter < l.DoubleInner &&
		l.DoubleInner < l.DoubleOuter
}

// RingAt classifies a distance from the centre. Bands are half-open,
// so a point exactly on a boundary belongs to the outer band.
func (l Layout) RingAt(radius float64) (Ring, bool) {
	switch {
	case radius < l.InnerBull:
		return RingInnerBull, true
	case radius < l.OuterBull:
		return RingOuterBull, true
	case radius < l.TripleInner:
		return RingInnerSingle, true
	case radius < l.TripleOuter:
		return RingTriple, true
	case radius < l.DoubleInner:
		return RingOuterSingle, true
	case radius < l.DoubleOuter:
		return RingDouble, true
	default:
		return "", false
	}
}

// SectorAt returns the wedge index for an angle in degrees measured
// clockwise from straight up. Each wedge is centred on its nominal angle.
func SectorAt(angle float64) int {
	a := math.Mod(angle+sectorAngle/2, 360)
	if a < 0 {
		a += 360
	}
	return int(a/sectorAngle) % SectorCount
}

// Polar converts a position relative to the centre (screen axes, y down)
// into a distance and a clockwise angle from straight up in [0, 360).
func Polar(x, y float64) (radius, angle float64) {
	radius = math.Hypot(x, y)
	angle = math.Atan2(x, -y) * 180 / math.Pi
	if angle < 0 {
		angle += 360
	}
	return radius, angle
}

// ResolvePoint classifies a position relative to the board centre
// (screen axes, y grows downward). Off-board positions return false.
func (l Layout) ResolvePoint(x, y float64) (model.Hit, bool) {
	radius, angle := Polar(x, y)
	ring, ok := l.RingAt(radius)
	if !ok {
		return model.Hit{}, false
	}
	return ResolveZone(SectorAt(angle), ring)
}
