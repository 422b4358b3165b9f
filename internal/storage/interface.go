package storage

import (
	"context"

	"github.com/mcoot/dartscore-go/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Game operations
	SaveGame(ctx context.Context, game *model.GameState) error
	GetGame(ctx context.Context, id model.GameID) (*model.GameState, error)
	DeleteGame(ctx context.Context, id model.GameID) error
	// ListGames returns a summary of every stored game, most recently updated first
	ListGames(ctx context.Context) ([]model.GameInfo, error)

	// Default game pointer used by the board page
	SetDefaultGame(ctx context.Context, id model.GameID) error
	GetDefaultGame(ctx context.Context) (model.GameID, error)

	// Statistics history, oldest first. Recording a game id already in the
	// history replaces that entry in place.
	RecordStatistics(ctx context.Context, stats *model.GameStatistics) error
	ListStatistics(ctx context.Context) ([]model.GameStatistics, error)
}
