package sse

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mcoot/dartscore-go/internal/api/response"
	"github.com/mcoot/dartscore-go/internal/model"
)

// Event names pushed to live clients
const (
	EventConnected   = "connected"
	EventGameUpdate  = "game-update"
	EventGameDeleted = "game-deleted"
)

// Broadcaster pushes committed game snapshots to the hub of each game.
// It is registered with the game controller as a listener.
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "live-broadcaster")),
	}
}

// GameUpdated implements game.Listener
func (b *Broadcaster) GameUpdated(_ context.Context, state *model.GameState, event model.Event) {
	switch event.Type {
	case model.EventGameFinished:
		// The winning throw already carried the finished snapshot
		return

	case model.EventGameDeleted:
		hub := b.hubManager.GetHub(event.GameID)
		if hub == nil {
			return
		}
		data, _ := json.Marshal(map[string]string{"id": string(event.GameID)})
		// Clients leave on their own; the empty hub is reaped later
		hub.Broadcast(Message{Event: EventGameDeleted, Data: string(data)})
		return
	}

	// A reset is announced on the old id; the snapshot carries the new one
	hub := b.hubManager.GetHub(event.GameID)
	if hub == nil {
		return
	}

	message, err := SnapshotMessage(state)
	if err != nil {
		b.logger.Error("live failed to encode game",
			slog.String("game_id", string(state.ID)),
			slog.String("error", err.Error()))
		return
	}
	hub.Broadcast(message)
}

// SnapshotMessage encodes a game as a game-update message
func SnapshotMessage(state *model.GameState) (Message, error) {
	data, err := json.Marshal(response.GameFromModel(state))
	if err != nil {
		return Message{}, err
	}
	return Message{Event: EventGameUpdate, Data: string(data)}, nil
}
