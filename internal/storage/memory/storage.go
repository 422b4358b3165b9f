package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/mcoot/dartscore-go/internal/model"
	"github.com/mcoot/dartscore-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	games       map[model.GameID]*model.GameState
	defaultGame model.GameID
	statistics  []model.GameStatistics
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		games: make(map[model.GameID]*model.GameState),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.GameState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = game.Clone()
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return game.Clone(), nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	if s.defaultGame == id {
		s.defaultGame = ""
	}
	return nil
}

func (s *Storage) ListGames(ctx context.Context) ([]model.GameInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	infos := make([]model.GameInfo, 0, len(s.games))
	for _, game := range s.games {
		infos = append(infos, game.Info())
	}
	slices.SortFunc(infos, func(a, b model.GameInfo) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return infos, nil
}

// Default game

func (s *Storage) SetDefaultGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaultGame = id
	return nil
}

func (s *Storage) GetDefaultGame(ctx context.Context) (model.GameID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.defaultGame == "" {
		return "", model.ErrGameNotFound
	}
	return s.defaultGame, nil
}

// Statistics operations

func (s *Storage) RecordStatistics(ctx context.Context, stats *model.GameStatistics) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := *stats
	entry.Players = slices.Clone(stats.Players)

	idx := slices.IndexFunc(s.statistics, func(existing model.GameStatistics) bool {
		return existing.GameID == stats.GameID
	})
	if idx >= 0 {
		s.statistics[idx] = entry
		return nil
	}
	s.statistics = append(s.statistics, entry)
	return nil
}

func (s *Storage) ListStatistics(ctx context.Context) ([]model.GameStatistics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.statistics), nil
}
