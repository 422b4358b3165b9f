package board

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/dartscore-go/internal/model"
)

// pointAt returns screen coordinates for a clockwise angle from the top
func pointAt(angle, radius float64) (float64, float64) {
	rad := angle * math.Pi / 180
	return radius * math.Sin(rad), -radius * math.Cos(rad)
}

func TestResolveZoneNumberedRings(t *testing.T) {
	for index, value := range SectorOrder {
		tests := []struct {
			ring       Ring
			multiplier model.Multiplier
			factor     int
		}{
			{RingInnerSingle, model.MultiplierSingle, 1},
			{RingOuterSingle, model.MultiplierSingle, 1},
			{RingTriple, model.MultiplierTriple, 3},
			{RingDouble, model.MultiplierDouble, 2},
		}
		for _, tt := range tests {
			hit, ok := ResolveZone(index, tt.ring)
			require.True(t, ok)
			assert.Equal(t, value, hit.Sector)
			assert.Equal(t, tt.multiplier, hit.Multiplier)
			assert.Equal(t, value*tt.factor, hit.Points)
		}
	}
}

func TestResolveZoneBull(t *testing.T) {
	outer, ok := ResolveZone(7, RingOuterBull)
	require.True(t, ok)
	assert.Equal(t, model.Hit{Sector: 25, Multiplier: model.MultiplierSingle, Points: 25}, outer)

	inner, ok := ResolveZone(-1, RingInnerBull)
	require.True(t, ok)
	assert.Equal(t, model.Hit{Sector: 25, Multiplier: model.MultiplierDouble, Points: 50}, inner)
}

func TestResolveZoneRejectsInvalidSelection(t *testing.T) {
	_, ok := ResolveZone(20, RingTriple)
	assert.False(t, ok)

	_, ok = ResolveZone(-1, RingDouble)
	assert.False(t, ok)

	_, ok = ResolveZone(0, Ring("treble"))
	assert.False(t, ok)
}

func TestSectorAtWedgeBoundaries(t *testing.T) {
	assert.Equal(t, 0, SectorAt(0))
	assert.Equal(t, 0, SectorAt(8.9))
	assert.Equal(t, 1, SectorAt(9))
	assert.Equal(t, 0, SectorAt(351))
	assert.Equal(t, 19, SectorAt(350.9))
	assert.Equal(t, 0, SectorAt(-5))
	assert.Equal(t, 5, SectorAt(90))
}

func TestResolvePointCompassDirections(t *testing.T) {
	layout := DefaultLayout()

	tests := []struct {
		name   string
		x, y   float64
		sector int
	}{
		{"top is 20", 0, -150, 20},
		{"right is 6", 150, 0, 6},
		{"bottom is 3", 0, 150, 3},
		{"left is 11", -150, 0, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := layout.ResolvePoint(tt.x, tt.y)
			require.True(t, ok)
			assert.Equal(t, tt.sector, hit.Sector)
			assert.Equal(t, model.MultiplierSingle, hit.Multiplier)
		})
	}
}

func TestResolvePointEveryWedgeCentre(t *testing.T) {
	layout := DefaultLayout()
	for index, value := range SectorOrder {
		x, y := pointAt(float64(index)*18, 104)
		hit, ok := layout.ResolvePoint(x, y)
		require.True(t, ok)
		assert.Equal(t, value, hit.Sector)
		assert.Equal(t, model.MultiplierTriple, hit.Multiplier)
		assert.Equal(t, value*3, hit.Points)
	}
}

func TestResolvePointRadialBands(t *testing.T) {
	layout := DefaultLayout()

	tests := []struct {
		name       string
		radius     float64
		sector     int
		multiplier model.Multiplier
		points     int
	}{
		{"centre", 0, 25, model.MultiplierDouble, 50},
		{"inner bull edge", 9.9, 25, model.MultiplierDouble, 50},
		{"outer bull", 10, 25, model.MultiplierSingle, 25},
		{"inner single", 50, 20, model.MultiplierSingle, 20},
		{"triple", 100, 20, model.MultiplierTriple, 60},
		{"outer single", 150, 20, model.MultiplierSingle, 20},
		{"double", 190, 20, model.MultiplierDouble, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := layout.ResolvePoint(0, -tt.radius)
			require.True(t, ok)
			assert.Equal(t, tt.sector, hit.Sector)
			assert.Equal(t, tt.multiplier, hit.Multiplier)
			assert.Equal(t, tt.points, hit.Points)
		})
	}
}

func TestResolvePointOffBoard(t *testing.T) {
	layout := DefaultLayout()

	_, ok := layout.ResolvePoint(0, -205)
	assert.False(t, ok)

	_, ok = layout.ResolvePoint(300, 300)
	assert.False(t, ok)
}

func TestScaledLayoutKeepsProportions(t *testing.T) {
	layout := DefaultLayout().Scale(1)
	require.True(t, layout.Valid())
	assert.InDelta(t, 1.0, layout.DoubleOuter, 1e-9)
	assert.InDelta(t, 25.0/205, layout.OuterBull, 1e-9)

	hit, ok := layout.ResolvePoint(0.5, 0)
	require.True(t, ok)
	assert.Equal(t, 6, hit.Sector)
	assert.Equal(t, model.MultiplierTriple, hit.Multiplier)
}

func TestPolar(t *testing.T) {
	r, a := Polar(3, -4)
	assert.InDelta(t, 5, r, 1e-9)
	assert.InDelta(t, 36.87, a, 0.01)

	_, a = Polar(-1, 0)
	assert.InDelta(t, 270, a, 1e-9)
}

func TestSectorPath(t *testing.T) {
	layout := DefaultLayout()

	path := layout.SectorPath(240, 240, 0, RingDouble)
	assert.Contains(t, path, "M ")
	assert.Contains(t, path, "A 205.00 205.00")
	assert.Contains(t, path, "A 188.00 188.00")

	assert.Empty(t, layout.SectorPath(240, 240, 0, RingInnerBull))
}

func TestSectorIndex(t *testing.T) {
	assert.Equal(t, 0, SectorIndex(20))
	assert.Equal(t, 19, SectorIndex(5))
	assert.Equal(t, -1, SectorIndex(25))
}

func TestMidRadiusResolvesToSameRing(t *testing.T) {
	l := DefaultLayout()
	for _, ring := range Rings() {
		got, ok := l.RingAt(l.MidRadius(ring))
		assert.True(t, ok)
		assert.Equal(t, ring, got)
	}
}
