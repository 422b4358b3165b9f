package request

// CreateGameRequest is the request body for creating a game.
// Omitting player_names gives the default roster.
type CreateGameRequest struct {
	PlayerNames []string `json:"player_names,omitempty"`
}

// AddPlayerRequest is the request body for adding a player
type AddPlayerRequest struct {
	Name string `json:"name"`
}

// RenamePlayerRequest is the request body for renaming a player
type RenamePlayerRequest struct {
	Name string `json:"name"`
}

// StartGameRequest is the request body for starting a game
type StartGameRequest struct {
	GameType      string `json:"game_type,omitempty"`
	StartingScore int    `json:"starting_score,omitempty"`
	DoubleOut     *bool  `json:"double_out,omitempty"`
}

// ThrowRequest describes a dart in one of three ways: a sector and
// multiplier, a board zone (sector_index and ring), or a point (x and y)
type ThrowRequest struct {
	Sector     *int   `json:"sector,omitempty"`
	Multiplier string `json:"multiplier,omitempty"`

	SectorIndex *int   `json:"sector_index,omitempty"`
	Ring        string `json:"ring,omitempty"`

	X *float64 `json:"x,omitempty"`
	Y *float64 `json:"y,omitempty"`
}

// BotThrowRequest is the request body for a practice bot dart
type BotThrowRequest struct {
	Strategy string `json:"strategy,omitempty"`
	FullTurn bool   `json:"full_turn,omitempty"`
}
