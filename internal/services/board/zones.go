// Package board maps dartboard interactions to scored hits.
package board

import (
	"github.com/mcoot/dartscore-go/internal/model"
)

// SectorCount is the number of numbered wedges on the board
const SectorCount = 20

// SectorOrder lists the sector values clockwise from the top
var SectorOrder = [SectorCount]int{20, 1, 18, 4, 13, 6, 10, 15, 2, 17, 3, 19, 7, 16, 8, 11, 14, 9, 12, 5}

// Ring identifies a concentric scoring band
type Ring string

const (
	RingInnerBull   Ring = "inner_bull"
	RingOuterBull   Ring = "outer_bull"
	RingInnerSingle Ring = "inner_single"
	RingTriple      Ring = "triple"
	RingOuterSingle Ring = "outer_single"
	RingDouble      Ring = "double"
)

// Rings returns every ring from the centre outward
func Rings() []Ring {
	return []Ring{RingInnerBull, RingOuterBull, RingInnerSingle, RingTriple, RingOuterSingle, RingDouble}
}

// IsBull returns true for the two bull rings
func (r Ring) IsBull() bool {
	return r == RingInnerBull || r == RingOuterBull
}

// Multiplier returns the scoring tier of the ring.
// Inner bull counts as double and outer bull as single.
func (r Ring) Multiplier() (model.Multiplier, bool) {
	switch r {
	case RingInnerSingle, RingOuterSingle, RingOuterBull:
		return model.MultiplierSingle, true
	case RingTriple:
		return model.MultiplierTriple, true
	case RingDouble, RingInnerBull:
		return model.MultiplierDouble, true
	default:
		return "", false
	}
}

// SectorValue returns the number printed on the wedge at index, clockwise from the top
func SectorValue(index int) (int, bool) {
	if index < 0 || index >= SectorCount {
		return 0, false
	}
	return SectorOrder[index], true
}

// SectorIndex returns the clockwise index of a sector value, or -1
func SectorIndex(value int) int {
	for i, v := range SectorOrder {
		if v == value {
			return i
		}
	}
	return -1
}

// ResolveZone converts a discrete zone selection into a hit.
// The sector index is ignored for the bull rings. The second result is
// false when the selection does not name a scoring zone.
func ResolveZone(index int, ring Ring) (model.Hit, bool) {
	multiplier, ok := ring.Multiplier()
	if !ok {
		return model.Hit{}, false
	}

	if ring.IsBull() {
		hit, err := model.NewHit(model.BullSector, multiplier)
		return hit, err == nil
	}

	value, ok := SectorValue(index)
	if !ok {
		return model.Hit{}, false
	}
	hit, err := model.NewHit(value, multiplier)
	return hit, err == nil
}
