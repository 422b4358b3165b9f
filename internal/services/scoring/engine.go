// Package scoring implements the 501-style turn and scoring state machine.
//
// Every transition takes a snapshot and returns the next one. The input
// snapshot is never modified; when an operation is not valid for the
// current state the input pointer itself is returned, so callers can
// detect a no-op with ==.
package scoring

import (
	"strings"

	"github.com/mcoot/dartscore-go/internal/dependencies/clock"
	"github.com/mcoot/dartscore-go/internal/dependencies/random"
	"github.com/mcoot/dartscore-go/internal/model"
)

// Engine applies transitions to game snapshots
type Engine struct {
	clock  clock.Clock
	random random.Random
}

// NewEngine creates a new Engine
func NewEngine(clock clock.Clock, random random.Random) *Engine {
	return &Engine{
		clock:  clock,
		random: random,
	}
}

// CheckFinish reports whether a throw leaving candidate points may be scored.
// A score can never go below zero; with double-out a player can neither be
// left on 1 nor finish on anything but a double (inner bull included).
func CheckFinish(candidate int, multiplier model.Multiplier, doubleOut bool) bool {
	if candidate < 0 {
		return false
	}
	if doubleOut {
		if candidate == 1 {
			return false
		}
		if candidate == 0 && multiplier != model.MultiplierDouble {
			return false
		}
	}
	return true
}

// NormalizeName trims a player name and caps its length.
// The second result is false if nothing is left.
func NormalizeName(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	runes := []rune(name)
	if len(runes) > model.MaxPlayerNameLength {
		name = strings.TrimSpace(string(runes[:model.MaxPlayerNameLength]))
	}
	return name, true
}

// NewGame creates a fresh game with default settings and the given roster.
// Invalid names are skipped and the roster is capped at MaxPlayers.
func (e *Engine) NewGame(names []string) *model.GameState {
	now := e.clock.Now()
	settings := model.DefaultSettings()

	g := &model.GameState{
		ID:            model.GameID(e.random.NewID()),
		GameType:      settings.GameType,
		StartingScore: settings.StartingScore,
		DoubleOut:     settings.DoubleOut,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	for _, raw := range names {
		name, ok := NormalizeName(raw)
		if !ok || len(g.Players) >= model.MaxPlayers {
			continue
		}
		g.Players = append(g.Players, model.Player{
			ID:              model.PlayerID(e.random.NewID()),
			Name:            name,
			Score:           g.StartingScore,
			IsCurrentPlayer: len(g.Players) == 0,
		})
	}

	return g
}

// RosterLocked reports whether players may no longer be added or removed.
// The roster is fixed from the first dart or StartGame until ResetGame.
func RosterLocked(g *model.GameState) bool {
	return g.Started
}

// AddPlayer appends a player with the starting score
func (e *Engine) AddPlayer(g *model.GameState, name string) *model.GameState {
	if RosterLocked(g) || len(g.Players) >= model.MaxPlayers {
		return g
	}
	name, ok := NormalizeName(name)
	if !ok {
		return g
	}

	next := e.begin(g)
	if len(next.Players) == 0 {
		next.CurrentPlayerIndex = 0
	}
	next.Players = append(next.Players, model.Player{
		ID:              model.PlayerID(e.random.NewID()),
		Name:            name,
		Score:           next.StartingScore,
		IsCurrentPlayer: len(next.Players) == 0,
	})
	return next
}

// RemovePlayer drops a player from the roster. The current index is kept
// and clamped to the shortened roster, so removing an earlier player hands
// the turn to whoever slides into that slot.
func (e *Engine) RemovePlayer(g *model.GameState, id model.PlayerID) *model.GameState {
	if RosterLocked(g) {
		return g
	}
	idx := g.PlayerIndex(id)
	if idx < 0 {
		return g
	}

	next := e.begin(g)
	next.Players = append(next.Players[:idx], next.Players[idx+1:]...)

	current := min(next.CurrentPlayerIndex, len(next.Players)-1)
	setCurrent(next, max(current, 0))
	return next
}

// RenamePlayer changes a player's display name. Blank names are ignored.
func (e *Engine) RenamePlayer(g *model.GameState, id model.PlayerID, name string) *model.GameState {
	name, ok := NormalizeName(name)
	if !ok {
		return g
	}
	idx := g.PlayerIndex(id)
	if idx < 0 {
		return g
	}

	next := e.begin(g)
	next.Players[idx].Name = name
	return next
}

// StartGame applies settings and restarts scoring for the existing roster.
// Cricket is not playable, and a game needs a positive starting score and
// at least one player.
func (e *Engine) StartGame(g *model.GameState, settings model.Settings) *model.GameState {
	if settings.GameType == "" {
		settings.GameType = model.GameTypeStandard501
	}
	if settings.GameType != model.GameTypeStandard501 || settings.StartingScore <= 0 || len(g.Players) == 0 {
		return g
	}

	next := e.begin(g)
	next.GameType = settings.GameType
	next.StartingScore = settings.StartingScore
	next.DoubleOut = settings.DoubleOut
	for i := range next.Players {
		next.Players[i].Score = settings.StartingScore
		next.Players[i].DartsThrown = 0
	}
	setCurrent(next, 0)
	next.Throws = nil
	next.Turns = nil
	next.IsFinished = false
	next.Winner = ""
	next.TotalTurns = 0
	next.Started = true
	return next
}

// Throw records a dart for the current player.
//
// A dart that breaks the finish rules is still logged and still uses one of
// the three darts, but leaves the score unchanged and is marked not applied.
// A dart that takes the score to exactly zero under the rules wins the game.
func (e *Engine) Throw(g *model.GameState, hit model.Hit) *model.GameState {
	if g.IsFinished {
		return g
	}
	current := g.CurrentPlayer()
	if current == nil || current.DartsThrown >= model.MaxDartsPerTurn {
		return g
	}

	candidate := current.Score - hit.Points
	accepted := CheckFinish(candidate, hit.Multiplier, g.DoubleOut)

	next := e.begin(g)
	player := &next.Players[next.CurrentPlayerIndex]
	if accepted {
		player.Score = max(0, candidate)
	}
	player.DartsThrown++

	next.Throws = append(next.Throws, model.Throw{
		ID:         model.ThrowID(e.random.NewID()),
		PlayerID:   player.ID,
		Sector:     hit.Sector,
		Multiplier: hit.Multiplier,
		Points:     hit.Points,
		Applied:    accepted,
		Timestamp:  next.UpdatedAt,
	})
	next.Started = true

	if accepted && player.Score == 0 && CheckFinish(0, hit.Multiplier, g.DoubleOut) {
		next.IsFinished = true
		next.Winner = player.ID
	}
	return next
}

// NextPlayer closes the current turn and passes play on. It only applies once
// the current player has used all darts, or after the game has finished.
func (e *Engine) NextPlayer(g *model.GameState) *model.GameState {
	current := g.CurrentPlayer()
	if current == nil {
		return g
	}
	if current.DartsThrown < model.MaxDartsPerTurn && !g.IsFinished {
		return g
	}

	var turnThrows []model.Throw
	if current.DartsThrown > 0 {
		playerThrows := g.ThrowsFor(current.ID)
		from := max(0, len(playerThrows)-current.DartsThrown)
		turnThrows = playerThrows[from:]
	}

	total := 0
	for _, t := range turnThrows {
		if t.Applied {
			total += t.Points
		}
	}

	next := e.begin(g)
	next.Turns = append(next.Turns, model.Turn{
		ID:          e.random.NewID(),
		PlayerID:    current.ID,
		PlayerName:  current.Name,
		Throws:      turnThrows,
		TotalPoints: total,
		TurnNumber:  g.TotalTurns + 1,
		Timestamp:   next.UpdatedAt,
	})

	nextIdx := (g.CurrentPlayerIndex + 1) % len(next.Players)
	setCurrent(next, nextIdx)
	next.Players[nextIdx].DartsThrown = 0
	next.TotalTurns++
	return next
}

// UndoLastThrow removes the most recent dart, refunds its points if they
// were applied, hands the dart back and clears any win.
func (e *Engine) UndoLastThrow(g *model.GameState) *model.GameState {
	last := g.LastThrow()
	if last == nil {
		return g
	}
	idx := g.PlayerIndex(last.PlayerID)
	if idx < 0 {
		return g
	}

	next := e.begin(g)
	next.Throws = next.Throws[:len(next.Throws)-1]
	player := &next.Players[idx]
	if last.Applied {
		player.Score += last.Points
	}
	player.DartsThrown = max(0, player.DartsThrown-1)
	next.IsFinished = false
	next.Winner = ""
	return next
}

// ResetGame starts over with default settings, keeping the roster
func (e *Engine) ResetGame(g *model.GameState) *model.GameState {
	settings := model.DefaultSettings()

	next := e.begin(g)
	next.ID = model.GameID(e.random.NewID())
	next.CreatedAt = next.UpdatedAt
	next.GameType = settings.GameType
	next.StartingScore = settings.StartingScore
	next.DoubleOut = settings.DoubleOut
	for i := range next.Players {
		next.Players[i].Score = settings.StartingScore
		next.Players[i].DartsThrown = 0
	}
	setCurrent(next, 0)
	next.Throws = nil
	next.Turns = nil
	next.IsFinished = false
	next.Winner = ""
	next.TotalTurns = 0
	next.Started = false
	return next
}

// begin copies the snapshot and stamps it
func (e *Engine) begin(g *model.GameState) *model.GameState {
	next := g.Clone()
	next.UpdatedAt = e.clock.Now()
	return next
}

// setCurrent marks the player at idx as the only current player
func setCurrent(g *model.GameState, idx int) {
	g.CurrentPlayerIndex = idx
	for i := range g.Players {
		g.Players[i].IsCurrentPlayer = i == idx
	}
}
