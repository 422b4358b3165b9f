package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventGameCreated   EventType = "game_created"
	EventPlayerAdded   EventType = "player_added"
	EventPlayerRemoved EventType = "player_removed"
	EventPlayerRenamed EventType = "player_renamed"
	EventGameStarted   EventType = "game_started"
	EventThrowRecorded EventType = "throw_recorded"
	EventThrowUndone   EventType = "throw_undone"
	EventTurnAdvanced  EventType = "turn_advanced"
	EventGameFinished  EventType = "game_finished"
	EventGameReset     EventType = "game_reset"
	EventGameDeleted   EventType = "game_deleted"
)

// Event describes a committed transition
type Event struct {
	Type      EventType
	Timestamp time.Time
	GameID    GameID
	PlayerID  PlayerID // The player who triggered or is affected, if any
	Payload   any      // Type-specific data
}

// ThrowRecordedPayload contains data for throw recorded events
type ThrowRecordedPayload struct {
	Throw          Throw
	RemainingScore int
}

// GameFinishedPayload contains data for game finished events
type GameFinishedPayload struct {
	Winner     PlayerID
	TotalTurns int
}
