package model

import "time"

// PlayerStatistics is one player's line in a finished game summary
type PlayerStatistics struct {
	ID             PlayerID `json:"id" yaml:"id" bson:"id"`
	Name           string   `json:"name" yaml:"name" bson:"name"`
	FinalScore     int      `json:"final_score" yaml:"finalScore" bson:"final_score"`
	TotalThrows    int      `json:"total_throws" yaml:"totalThrows" bson:"total_throws"`
	AverageScore   float64  `json:"average_score" yaml:"averageScore" bson:"average_score"`
	BestTurn       int      `json:"best_turn" yaml:"bestTurn" bson:"best_turn"`
	FinishPosition int      `json:"finish_position" yaml:"finishPosition" bson:"finish_position"`
}

// GameSettingsSummary records the rules a summarised game was played with
type GameSettingsSummary struct {
	StartingScore int  `json:"starting_score" yaml:"startingScore" bson:"starting_score"`
	DoubleOut     bool `json:"double_out" yaml:"doubleOut" bson:"double_out"`
}

// GameStatistics is the read-only summary handed to statistics sinks
type GameStatistics struct {
	GameID       GameID              `json:"game_id" yaml:"gameId" bson:"game_id"`
	StartTime    time.Time           `json:"start_time" yaml:"startTime" bson:"start_time"`
	EndTime      *time.Time          `json:"end_time,omitempty" yaml:"endTime,omitempty" bson:"end_time,omitempty"`
	Players      []PlayerStatistics  `json:"players" yaml:"players" bson:"players"`
	TotalTurns   int                 `json:"total_turns" yaml:"totalTurns" bson:"total_turns"`
	GameType     GameType            `json:"game_type" yaml:"gameType" bson:"game_type"`
	Winner       PlayerID            `json:"winner,omitempty" yaml:"winner,omitempty" bson:"winner,omitempty"`
	GameSettings GameSettingsSummary `json:"game_settings" yaml:"gameSettings" bson:"game_settings"`
}

// PlayerFor returns the statistics line for the given player, or nil
func (s *GameStatistics) PlayerFor(id PlayerID) *PlayerStatistics {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return &s.Players[i]
		}
	}
	return nil
}

// PlayerAggregate summarises a player across every recorded game
type PlayerAggregate struct {
	PlayerID     PlayerID `json:"player_id"`
	TotalGames   int      `json:"total_games"`
	Wins         int      `json:"wins"`
	AverageScore float64  `json:"average_score"`
	BestTurn     int      `json:"best_turn"`
	TotalThrows  int      `json:"total_throws"`
}
