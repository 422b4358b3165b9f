package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mcoot/dartscore-go/internal/model"
	"github.com/mcoot/dartscore-go/internal/services/game"
)

// Dart describes a bot throw: where it landed and what it scored
type Dart struct {
	X, Y     float64
	Hit      model.Hit
	OnBoard  bool
	Strategy string
}

// Service throws darts for the current player of a game
type Service struct {
	gameController *game.Controller
	strategies     map[string]Strategy
	logger         *slog.Logger
}

// NewService creates a new bot Service
func NewService(gameController *game.Controller, strategies map[string]Strategy, logger *slog.Logger) *Service {
	return &Service{
		gameController: gameController,
		strategies:     strategies,
		logger:         logger.With(slog.String("component", "bot-service")),
	}
}

// ThrowForCurrent throws one dart for the current player using the named
// strategy. A dart that misses the board still counts, scoring nothing.
func (s *Service) ThrowForCurrent(ctx context.Context, id model.GameID, strategy string) (*model.GameState, *Dart, error) {
	if strategy == "" {
		strategy = model.BotStrategyRandom
	}
	strat, ok := s.strategies[strategy]
	if !ok {
		return nil, nil, fmt.Errorf("%w: unknown bot strategy %q", model.ErrInvalidThrow, strategy)
	}

	g, err := s.gameController.GetGame(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	layout := s.gameController.Layout()
	x, y := strat.ChoosePoint(g, layout)
	hit, onBoard := layout.ResolvePoint(x, y)
	if !onBoard {
		hit = model.Hit{Sector: model.MissSector, Multiplier: model.MultiplierSingle}
	}

	next, err := s.gameController.ThrowHit(ctx, id, hit)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("bot threw dart",
		slog.String("game_id", string(id)),
		slog.String("strategy", strategy),
		slog.String("hit", hit.Label()),
		slog.Bool("on_board", onBoard),
	)

	return next, &Dart{X: x, Y: y, Hit: hit, OnBoard: onBoard, Strategy: strategy}, nil
}

// PlayTurn throws the current player's remaining darts, stopping early on a win
func (s *Service) PlayTurn(ctx context.Context, id model.GameID, strategy string) (*model.GameState, []Dart, error) {
	var darts []Dart
	for {
		g, dart, err := s.ThrowForCurrent(ctx, id, strategy)
		if err != nil {
			return nil, nil, err
		}
		darts = append(darts, *dart)
		if g.IsFinished || g.CurrentPlayer().DartsThrown >= model.MaxDartsPerTurn {
			return g, darts, nil
		}
	}
}
