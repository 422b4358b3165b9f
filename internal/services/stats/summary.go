// Package stats builds end-of-game summaries and hands them to export sinks.
package stats

import (
	"math"
	"time"

	"github.com/mcoot/dartscore-go/internal/model"
)

// Summarize builds the read-only statistics summary of a game.
// Averages and best turns count only points that were applied to the score.
func Summarize(g *model.GameState, now time.Time) model.GameStatistics {
	stats := model.GameStatistics{
		GameID:     g.ID,
		StartTime:  g.CreatedAt,
		Players:    make([]model.PlayerStatistics, 0, len(g.Players)),
		TotalTurns: g.TotalTurns,
		GameType:   g.GameType,
		Winner:     g.Winner,
		GameSettings: model.GameSettingsSummary{
			StartingScore: g.StartingScore,
			DoubleOut:     g.DoubleOut,
		},
	}
	if g.IsFinished {
		end := now
		stats.EndTime = &end
	}

	// Winner is 1st, everyone else follows in roster order
	nextPosition := 1
	if g.Winner != "" && g.GetPlayer(g.Winner) != nil {
		nextPosition = 2
	}

	for _, p := range g.Players {
		throws := g.ThrowsFor(p.ID)

		total := 0
		for _, t := range throws {
			total += appliedPoints(t)
		}

		average := 0.0
		if len(throws) > 0 {
			average = round2(float64(total) / float64(len(throws)))
		}

		position := 1
		if g.Winner != p.ID {
			position = nextPosition
			nextPosition++
		}

		stats.Players = append(stats.Players, model.PlayerStatistics{
			ID:             p.ID,
			Name:           p.Name,
			FinalScore:     p.Score,
			TotalThrows:    len(throws),
			AverageScore:   average,
			BestTurn:       bestTurn(throws),
			FinishPosition: position,
		})
	}

	return stats
}

// bestTurn is the highest total over consecutive groups of three darts.
// A trailing group of fewer than three darts is ignored.
func bestTurn(throws []model.Throw) int {
	best := 0
	for i := 0; i+model.MaxDartsPerTurn <= len(throws); i += model.MaxDartsPerTurn {
		sum := 0
		for _, t := range throws[i : i+model.MaxDartsPerTurn] {
			sum += appliedPoints(t)
		}
		best = max(best, sum)
	}
	return best
}

func appliedPoints(t model.Throw) int {
	if !t.Applied {
		return 0
	}
	return t.Points
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
