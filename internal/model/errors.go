package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrInvalidName    = errors.New("player name must not be empty")
	ErrRosterFull     = errors.New("roster is full")
	ErrRosterLocked   = errors.New("roster cannot change while a game is in progress")
	ErrNoPlayers      = errors.New("game has no players")

	// Game errors
	ErrGameNotFound        = errors.New("game not found")
	ErrGameFinished        = errors.New("game is already finished")
	ErrDartsExhausted      = errors.New("current player has thrown all darts this turn")
	ErrTurnNotComplete     = errors.New("current player has darts remaining")
	ErrNothingToUndo       = errors.New("no throws to undo")
	ErrUnsupportedGameType = errors.New("game type is not supported")
	ErrInvalidSettings     = errors.New("invalid game settings")

	// Throw errors
	ErrInvalidThrow = errors.New("invalid throw")
	ErrOffBoard     = errors.New("position is off the board")

	// Statistics errors
	ErrStatisticsNotFound = errors.New("no statistics recorded")
)
