package bot

import (
	"math"

	"github.com/mcoot/dartscore-go/internal/dependencies/random"
	"github.com/mcoot/dartscore-go/internal/model"
	"github.com/mcoot/dartscore-go/internal/services/board"
)

// RandomStrategy lands uniformly anywhere on the board
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

// ChoosePoint picks a point uniformly by area inside the outer double edge
func (s *RandomStrategy) ChoosePoint(g *model.GameState, layout board.Layout) (float64, float64) {
	r := layout.DoubleOuter * math.Sqrt(s.random.Float64())
	theta := 2 * math.Pi * s.random.Float64()
	return r * math.Sin(theta), -r * math.Cos(theta)
}
