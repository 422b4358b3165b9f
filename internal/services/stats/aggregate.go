package stats

import "github.com/mcoot/dartscore-go/internal/model"

// Aggregate combines a player's lines across the statistics history.
// Returns ErrStatisticsNotFound if the player appears in no recorded game.
func Aggregate(history []model.GameStatistics, playerID model.PlayerID) (*model.PlayerAggregate, error) {
	agg := &model.PlayerAggregate{PlayerID: playerID}

	averageSum := 0.0
	for i := range history {
		line := history[i].PlayerFor(playerID)
		if line == nil {
			continue
		}
		agg.TotalGames++
		if history[i].Winner == playerID {
			agg.Wins++
		}
		averageSum += line.AverageScore
		agg.BestTurn = max(agg.BestTurn, line.BestTurn)
		agg.TotalThrows += line.TotalThrows
	}

	if agg.TotalGames == 0 {
		return nil, model.ErrStatisticsNotFound
	}
	agg.AverageScore = round2(averageSum / float64(agg.TotalGames))
	return agg, nil
}
