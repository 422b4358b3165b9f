package bot

import (
	"math"

	"github.com/mcoot/dartscore-go/internal/dependencies/random"
	"github.com/mcoot/dartscore-go/internal/model"
	"github.com/mcoot/dartscore-go/internal/services/board"
)

// DefaultSpread is the aiming error as a fraction of the board radius
const DefaultSpread = 0.08

// AimedStrategy aims at a sensible target and scatters around it
type AimedStrategy struct {
	random random.Random
	spread float64
}

// NewAimedStrategy creates an AimedStrategy with the given spread
func NewAimedStrategy(rnd random.Random, spread float64) *AimedStrategy {
	return &AimedStrategy{random: rnd, spread: spread}
}

// ChoosePoint aims at a target for the current score and adds gaussian error
func (s *AimedStrategy) ChoosePoint(g *model.GameState, layout board.Layout) (float64, float64) {
	sector, ring := Target(g)
	x, y := aimPoint(layout, sector, ring)

	sigma := s.spread * layout.DoubleOuter
	dx, dy := s.gaussian()
	return x + dx*sigma, y + dy*sigma
}

// Target picks what to aim at: a checkout double when one is available,
// otherwise treble 20.
func Target(g *model.GameState) (sector int, ring board.Ring) {
	p := g.CurrentPlayer()
	if p == nil {
		return 20, board.RingTriple
	}

	score := p.Score
	switch {
	case score == model.InnerBullPoints:
		return model.BullSector, board.RingInnerBull
	case score <= 40 && score%2 == 0 && score > 0:
		return score / 2, board.RingDouble
	case score <= 41 && score > 0:
		return 1, board.RingInnerSingle
	case score <= 60:
		return 20, board.RingOuterSingle
	default:
		return 20, board.RingTriple
	}
}

// aimPoint returns the centre of the given zone
func aimPoint(layout board.Layout, sector int, ring board.Ring) (float64, float64) {
	if ring.IsBull() {
		return 0, 0
	}
	index := board.SectorIndex(sector)
	r := layout.MidRadius(ring)
	theta := float64(index) * 2 * math.Pi / board.SectorCount
	return r * math.Sin(theta), -r * math.Cos(theta)
}

// gaussian returns two independent standard normal samples
func (s *AimedStrategy) gaussian() (float64, float64) {
	u1 := s.random.Float64()
	u2 := s.random.Float64()
	if u1 <= 0 {
		u1 = math.SmallestNonzeroFloat64
	}
	mag := math.Sqrt(-2 * math.Log(u1))
	return mag * math.Cos(2*math.Pi*u2), mag * math.Sin(2*math.Pi*u2)
}
