package game

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/mcoot/dartscore-go/internal/dependencies/clock"
	"github.com/mcoot/dartscore-go/internal/model"
	"github.com/mcoot/dartscore-go/internal/services/board"
	"github.com/mcoot/dartscore-go/internal/services/scoring"
	"github.com/mcoot/dartscore-go/internal/services/stats"
	"github.com/mcoot/dartscore-go/internal/storage"
)

// Listener is notified after every committed transition
type Listener interface {
	GameUpdated(ctx context.Context, state *model.GameState, event model.Event)
}

// Controller owns game snapshots: it loads them, applies engine transitions,
// persists the result and notifies listeners
type Controller struct {
	storage  storage.Storage
	engine   *scoring.Engine
	layout   board.Layout
	exporter *stats.Exporter
	clock    clock.Clock
	logger   *slog.Logger

	mu        sync.Mutex
	locks     map[model.GameID]*sync.Mutex
	listeners []Listener
	defaultMu sync.Mutex
}

// NewController creates a new Controller
func NewController(
	storage storage.Storage,
	engine *scoring.Engine,
	layout board.Layout,
	exporter *stats.Exporter,
	clock clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:  storage,
		engine:   engine,
		layout:   layout,
		exporter: exporter,
		clock:    clock,
		logger:   logger,
		locks:    make(map[model.GameID]*sync.Mutex),
	}
}

// Subscribe registers a listener for committed transitions
func (c *Controller) Subscribe(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

// Layout returns the board geometry used for point throws
func (c *Controller) Layout() board.Layout {
	return c.layout
}

// CreateGame stores a new game. With no names the default roster is used.
func (c *Controller) CreateGame(ctx context.Context, names []string) (*model.GameState, error) {
	if names == nil {
		names = model.DefaultPlayerNames()
	}

	g := c.engine.NewGame(names)
	if err := c.storage.SaveGame(ctx, g); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(g.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(g.ID)),
		slog.Int("player_count", len(g.Players)),
	)

	c.notify(ctx, g, c.event(g, model.EventGameCreated, "", nil))
	return g, nil
}

// DefaultGame returns the game shown on the board page, creating it on first use
func (c *Controller) DefaultGame(ctx context.Context) (*model.GameState, error) {
	c.defaultMu.Lock()
	defer c.defaultMu.Unlock()

	id, err := c.storage.GetDefaultGame(ctx)
	if err == nil {
		g, err := c.storage.GetGame(ctx, id)
		if err == nil {
			return g, nil
		}
		if !errors.Is(err, model.ErrGameNotFound) {
			return nil, err
		}
	} else if !errors.Is(err, model.ErrGameNotFound) {
		return nil, err
	}

	g, err := c.CreateGame(ctx, nil)
	if err != nil {
		return nil, err
	}
	if err := c.storage.SetDefaultGame(ctx, g.ID); err != nil {
		return nil, err
	}
	return g, nil
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, id model.GameID) (*model.GameState, error) {
	return c.storage.GetGame(ctx, id)
}

// ListGames returns every stored game, most recently updated first
func (c *Controller) ListGames(ctx context.Context) ([]model.GameInfo, error) {
	return c.storage.ListGames(ctx)
}

// DeleteGame removes a game
func (c *Controller) DeleteGame(ctx context.Context, id model.GameID) error {
	lock := c.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	g, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return err
	}
	if err := c.storage.DeleteGame(ctx, id); err != nil {
		return err
	}

	c.logger.Info("game deleted", slog.String("game_id", string(id)))
	c.notify(ctx, g, c.event(g, model.EventGameDeleted, "", nil))

	c.mu.Lock()
	delete(c.locks, id)
	c.mu.Unlock()
	return nil
}

// AddPlayer appends a player to the roster
func (c *Controller) AddPlayer(ctx context.Context, id model.GameID, name string) (*model.GameState, error) {
	return c.update(ctx, id, func(g *model.GameState) (*model.GameState, model.Event, error) {
		next := c.engine.AddPlayer(g, name)
		if next == g {
			switch {
			case scoring.RosterLocked(g):
				return nil, model.Event{}, model.ErrRosterLocked
			case len(g.Players) >= model.MaxPlayers:
				return nil, model.Event{}, model.ErrRosterFull
			default:
				return nil, model.Event{}, model.ErrInvalidName
			}
		}
		added := next.Players[len(next.Players)-1]
		return next, c.event(next, model.EventPlayerAdded, added.ID, nil), nil
	})
}

// RemovePlayer drops a player from the roster
func (c *Controller) RemovePlayer(ctx context.Context, id model.GameID, playerID model.PlayerID) (*model.GameState, error) {
	return c.update(ctx, id, func(g *model.GameState) (*model.GameState, model.Event, error) {
		next := c.engine.RemovePlayer(g, playerID)
		if next == g {
			if g.PlayerIndex(playerID) < 0 {
				return nil, model.Event{}, model.ErrPlayerNotFound
			}
			return nil, model.Event{}, model.ErrRosterLocked
		}
		return next, c.event(next, model.EventPlayerRemoved, playerID, nil), nil
	})
}

// RenamePlayer changes a player's display name
func (c *Controller) RenamePlayer(ctx context.Context, id model.GameID, playerID model.PlayerID, name string) (*model.GameState, error) {
	return c.update(ctx, id, func(g *model.GameState) (*model.GameState, model.Event, error) {
		next := c.engine.RenamePlayer(g, playerID, name)
		if next == g {
			if g.PlayerIndex(playerID) < 0 {
				return nil, model.Event{}, model.ErrPlayerNotFound
			}
			return nil, model.Event{}, model.ErrInvalidName
		}
		return next, c.event(next, model.EventPlayerRenamed, playerID, nil), nil
	})
}

// StartGame applies settings and begins scoring
func (c *Controller) StartGame(ctx context.Context, id model.GameID, settings model.Settings) (*model.GameState, error) {
	return c.update(ctx, id, func(g *model.GameState) (*model.GameState, model.Event, error) {
		next := c.engine.StartGame(g, settings)
		if next == g {
			switch {
			case settings.GameType != "" && settings.GameType != model.GameTypeStandard501:
				return nil, model.Event{}, model.ErrUnsupportedGameType
			case settings.StartingScore <= 0:
				return nil, model.Event{}, model.ErrInvalidSettings
			default:
				return nil, model.Event{}, model.ErrNoPlayers
			}
		}
		return next, c.event(next, model.EventGameStarted, "", next.Settings()), nil
	})
}

// Throw records a dart for the current player by sector and multiplier
func (c *Controller) Throw(ctx context.Context, id model.GameID, sector int, multiplier model.Multiplier) (*model.GameState, error) {
	hit, err := model.NewHit(sector, multiplier)
	if err != nil {
		return nil, err
	}
	return c.ThrowHit(ctx, id, hit)
}

// ThrowZone records a dart from a discrete board zone selection
func (c *Controller) ThrowZone(ctx context.Context, id model.GameID, sectorIndex int, ring board.Ring) (*model.GameState, error) {
	hit, ok := board.ResolveZone(sectorIndex, ring)
	if !ok {
		return nil, model.ErrInvalidThrow
	}
	return c.ThrowHit(ctx, id, hit)
}

// ThrowAt records a dart landing at board coordinates relative to the centre.
// Points outside the board are rejected without recording a dart.
func (c *Controller) ThrowAt(ctx context.Context, id model.GameID, x, y float64) (*model.GameState, error) {
	hit, ok := c.layout.ResolvePoint(x, y)
	if !ok {
		return nil, model.ErrOffBoard
	}
	return c.ThrowHit(ctx, id, hit)
}

// ThrowHit records an already resolved hit for the current player
func (c *Controller) ThrowHit(ctx context.Context, id model.GameID, hit model.Hit) (*model.GameState, error) {
	return c.update(ctx, id, func(g *model.GameState) (*model.GameState, model.Event, error) {
		next := c.engine.Throw(g, hit)
		if next == g {
			switch {
			case g.IsFinished:
				return nil, model.Event{}, model.ErrGameFinished
			case g.CurrentPlayer() == nil:
				return nil, model.Event{}, model.ErrNoPlayers
			default:
				return nil, model.Event{}, model.ErrDartsExhausted
			}
		}

		throw := *next.LastThrow()
		player := next.GetPlayer(throw.PlayerID)

		c.logger.Info("throw recorded",
			slog.String("game_id", string(next.ID)),
			slog.String("player_id", string(throw.PlayerID)),
			slog.Int("sector", throw.Sector),
			slog.String("multiplier", string(throw.Multiplier)),
			slog.Int("points", throw.Points),
			slog.Bool("applied", throw.Applied),
			slog.Int("remaining", player.Score),
		)

		return next, c.event(next, model.EventThrowRecorded, throw.PlayerID, model.ThrowRecordedPayload{
			Throw:          throw,
			RemainingScore: player.Score,
		}), nil
	})
}

// NextPlayer closes the current turn and passes play on
func (c *Controller) NextPlayer(ctx context.Context, id model.GameID) (*model.GameState, error) {
	return c.update(ctx, id, func(g *model.GameState) (*model.GameState, model.Event, error) {
		next := c.engine.NextPlayer(g)
		if next == g {
			if g.CurrentPlayer() == nil {
				return nil, model.Event{}, model.ErrNoPlayers
			}
			return nil, model.Event{}, model.ErrTurnNotComplete
		}
		return next, c.event(next, model.EventTurnAdvanced, next.CurrentPlayer().ID, next.Turns[len(next.Turns)-1]), nil
	})
}

// UndoLastThrow removes the most recent dart
func (c *Controller) UndoLastThrow(ctx context.Context, id model.GameID) (*model.GameState, error) {
	return c.update(ctx, id, func(g *model.GameState) (*model.GameState, model.Event, error) {
		next := c.engine.UndoLastThrow(g)
		if next == g {
			return nil, model.Event{}, model.ErrNothingToUndo
		}
		undone := *g.LastThrow()
		return next, c.event(next, model.EventThrowUndone, undone.PlayerID, undone), nil
	})
}

// ResetGame starts the game over under a new id, keeping the roster.
// The old id is removed and the default game pointer follows the reset.
func (c *Controller) ResetGame(ctx context.Context, id model.GameID) (*model.GameState, error) {
	lock := c.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	g, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	next := c.engine.ResetGame(g)
	if err := c.storage.SaveGame(ctx, next); err != nil {
		return nil, err
	}
	// Repoint the default before the delete clears it
	if err := c.followDefault(ctx, id, next.ID); err != nil {
		return nil, err
	}
	if err := c.storage.DeleteGame(ctx, id); err != nil {
		return nil, err
	}

	c.mu.Lock()
	delete(c.locks, id)
	c.mu.Unlock()

	c.logger.Info("game reset",
		slog.String("game_id", string(id)),
		slog.String("new_game_id", string(next.ID)),
	)

	// Listeners of the old id learn the new one from the payload
	event := c.event(next, model.EventGameReset, "", next.ID)
	event.GameID = id
	c.notify(ctx, next, event)
	return next, nil
}

// Statistics summarises the game as it stands
func (c *Controller) Statistics(ctx context.Context, id model.GameID) (model.GameStatistics, error) {
	g, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return model.GameStatistics{}, err
	}
	return stats.Summarize(g, c.clock.Now()), nil
}

// StatisticsHistory returns every exported game summary, oldest first
func (c *Controller) StatisticsHistory(ctx context.Context) ([]model.GameStatistics, error) {
	return c.storage.ListStatistics(ctx)
}

// PlayerStatistics aggregates a player's exported games
func (c *Controller) PlayerStatistics(ctx context.Context, playerID model.PlayerID) (*model.PlayerAggregate, error) {
	history, err := c.storage.ListStatistics(ctx)
	if err != nil {
		return nil, err
	}
	return stats.Aggregate(history, playerID)
}

// transition computes the next snapshot or a reason it was rejected
type transition func(g *model.GameState) (*model.GameState, model.Event, error)

// update applies a transition under the game's lock and commits it
func (c *Controller) update(ctx context.Context, id model.GameID, fn transition) (*model.GameState, error) {
	lock := c.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	g, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	next, event, err := fn(g)
	if err != nil {
		c.logger.Debug("transition rejected",
			slog.String("game_id", string(id)),
			slog.String("reason", err.Error()),
		)
		return nil, err
	}

	if err := c.storage.SaveGame(ctx, next); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(id)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.notify(ctx, next, event)

	if !g.IsFinished && next.IsFinished {
		c.logger.Info("game finished",
			slog.String("game_id", string(next.ID)),
			slog.String("winner", string(next.Winner)),
			slog.Int("total_turns", next.TotalTurns),
		)
		if c.exporter != nil {
			c.exporter.Export(next)
		}
		c.notify(ctx, next, c.event(next, model.EventGameFinished, next.Winner, model.GameFinishedPayload{
			Winner:     next.Winner,
			TotalTurns: next.TotalTurns,
		}))
	}

	return next, nil
}

// followDefault moves the default game pointer from one id to another
func (c *Controller) followDefault(ctx context.Context, from, to model.GameID) error {
	current, err := c.storage.GetDefaultGame(ctx)
	if errors.Is(err, model.ErrGameNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if current != from {
		return nil
	}
	return c.storage.SetDefaultGame(ctx, to)
}

func (c *Controller) lockFor(id model.GameID) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	lock, ok := c.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[id] = lock
	}
	return lock
}

func (c *Controller) event(g *model.GameState, typ model.EventType, playerID model.PlayerID, payload any) model.Event {
	return model.Event{
		Type:      typ,
		Timestamp: c.clock.Now(),
		GameID:    g.ID,
		PlayerID:  playerID,
		Payload:   payload,
	}
}

func (c *Controller) notify(ctx context.Context, g *model.GameState, event model.Event) {
	c.mu.Lock()
	listeners := append([]Listener(nil), c.listeners...)
	c.mu.Unlock()

	for _, l := range listeners {
		l.GameUpdated(ctx, g, event)
	}
}
