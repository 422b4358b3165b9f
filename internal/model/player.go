package model

// PlayerID uniquely identifies a player for the lifetime of a game
type PlayerID string

// Player name bounds
const (
	MaxPlayerNameLength = 20
	MaxPlayers          = 8
)

// Player represents a participant and their running score
type Player struct {
	ID              PlayerID
	Name            string
	Score           int  // Remaining points, never negative
	IsCurrentPlayer bool // Exactly one player is current while players exist
	DartsThrown     int  // Darts used in the current turn, 0-3
}

// DefaultPlayerNames returns the roster a fresh game starts with
func DefaultPlayerNames() []string {
	return []string{"Player 1", "Player 2", "Player 3"}
}
