package model

import (
	"slices"
	"time"
)

// GameID uniquely identifies a game
type GameID string

// GameType selects the rule set
type GameType string

const (
	GameTypeStandard501 GameType = "standard501"
	GameTypeCricket     GameType = "cricket" // Not playable yet
)

// Phase is the lifecycle position of a game
type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhaseInProgress Phase = "in_progress"
	PhaseFinished   Phase = "finished"
)

// Settings are supplied when a game is started
type Settings struct {
	GameType      GameType
	StartingScore int // Usually 301, 501, 701 or 1001; any positive value is accepted
	DoubleOut     bool
}

// DefaultSettings returns the settings a fresh game uses
func DefaultSettings() Settings {
	return Settings{
		GameType:      GameTypeStandard501,
		StartingScore: 501,
		DoubleOut:     true,
	}
}

// StandardStartingScores lists the starting scores offered to players
func StandardStartingScores() []int {
	return []int{301, 501, 701, 1001}
}

// GameState is an immutable snapshot of a game. Transitions produce a new
// snapshot; a stored snapshot is never modified in place.
type GameState struct {
	ID                 GameID
	Players            []Player
	CurrentPlayerIndex int
	Throws             []Throw // Complete ordered throw log
	Turns              []Turn  // Completed turns
	GameType           GameType
	Started            bool
	IsFinished         bool
	Winner             PlayerID // Set if and only if IsFinished
	StartingScore      int
	DoubleOut          bool
	TotalTurns         int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Phase derives the lifecycle phase
func (g *GameState) Phase() Phase {
	switch {
	case g.IsFinished:
		return PhaseFinished
	case g.Started:
		return PhaseInProgress
	default:
		return PhaseNotStarted
	}
}

// Settings returns the rule settings of the game
func (g *GameState) Settings() Settings {
	return Settings{
		GameType:      g.GameType,
		StartingScore: g.StartingScore,
		DoubleOut:     g.DoubleOut,
	}
}

// CurrentPlayer returns the player whose turn it is, or nil if there are none
func (g *GameState) CurrentPlayer() *Player {
	if g.CurrentPlayerIndex < 0 || g.CurrentPlayerIndex >= len(g.Players) {
		return nil
	}
	return &g.Players[g.CurrentPlayerIndex]
}

// PlayerIndex returns the roster index of the given player, or -1
func (g *GameState) PlayerIndex(id PlayerID) int {
	return slices.IndexFunc(g.Players, func(p Player) bool { return p.ID == id })
}

// GetPlayer returns the player with the given ID, or nil if not found
func (g *GameState) GetPlayer(id PlayerID) *Player {
	idx := g.PlayerIndex(id)
	if idx < 0 {
		return nil
	}
	return &g.Players[idx]
}

// LastThrow returns the most recent throw, or nil if none
func (g *GameState) LastThrow() *Throw {
	if len(g.Throws) == 0 {
		return nil
	}
	return &g.Throws[len(g.Throws)-1]
}

// ThrowsFor returns the throws made by the given player, in order
func (g *GameState) ThrowsFor(id PlayerID) []Throw {
	var result []Throw
	for _, t := range g.Throws {
		if t.PlayerID == id {
			result = append(result, t)
		}
	}
	return result
}

// Clone returns a deep copy that shares no mutable memory with g
func (g *GameState) Clone() *GameState {
	c := *g
	c.Players = slices.Clone(g.Players)
	c.Throws = slices.Clone(g.Throws)
	if g.Turns != nil {
		c.Turns = make([]Turn, len(g.Turns))
		for i, t := range g.Turns {
			t.Throws = slices.Clone(t.Throws)
			c.Turns[i] = t
		}
	}
	return &c
}

// GameInfo is a lightweight listing entry for a stored game
type GameInfo struct {
	ID          GameID
	PlayerCount int
	Phase       Phase
	Winner      PlayerID
	UpdatedAt   time.Time
}

// Info summarises the game for listings
func (g *GameState) Info() GameInfo {
	return GameInfo{
		ID:          g.ID,
		PlayerCount: len(g.Players),
		Phase:       g.Phase(),
		Winner:      g.Winner,
		UpdatedAt:   g.UpdatedAt,
	}
}
