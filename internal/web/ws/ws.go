// Package ws serves the live game feed over websockets. Clients attach to the
// same hubs as the SSE feed and receive each message as a JSON frame.
package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mcoot/dartscore-go/internal/web/sse"
)

const (
	// Time allowed to write a frame to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong from the peer
	pongWait = 60 * time.Second

	// Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Clients only send control frames
	maxMessageSize = 512
)

// Frame is the JSON shape of every message written to the socket
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// Serve upgrades the request and streams hub messages until either side
// goes away. The initial message is written before any broadcast.
func Serve(w http.ResponseWriter, r *http.Request, hub *sse.Hub, clientID string, initial sse.Message, logger *slog.Logger) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response
		logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	client := sse.NewClient(hub, clientID, sse.TransportWebSocket)
	if !hub.Register(client) {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "game feed closed"))
		_ = conn.Close()
		return
	}

	go readPump(conn, hub, client)
	writePump(conn, client, initial)
}

// readPump discards client frames and keeps the read deadline alive.
// It unregisters the client when the connection drops.
func readPump(conn *websocket.Conn, hub *sse.Hub, client *sse.Client) {
	defer hub.Unregister(client)

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump owns all writes to the connection
func writePump(conn *websocket.Conn, client *sse.Client, initial sse.Message) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	if err := writeFrame(conn, initial); err != nil {
		return
	}

	for {
		select {
		case message, ok := <-client.Messages():
			if !ok {
				// Hub closed the channel
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := writeFrame(conn, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func writeFrame(conn *websocket.Conn, message sse.Message) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(Frame{Event: message.Event, Data: json.RawMessage(message.Data)})
}
