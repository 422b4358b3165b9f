package sse

import (
	"net/http"
	"time"
)

const (
	// Time between keepalive pings
	pingPeriod = 30 * time.Second

	// Buffer size for outgoing messages
	sendBufferSize = 256
)

// Transport names reported in hub logs
const (
	TransportSSE       = "sse"
	TransportWebSocket = "websocket"
)

// Client is one live connection attached to a hub
type Client struct {
	hub         *Hub
	id          string
	transport   string
	send        chan Message
	connectedAt time.Time
}

// NewClient creates a new live client
func NewClient(hub *Hub, id, transport string) *Client {
	return &Client{
		hub:         hub,
		id:          id,
		transport:   transport,
		send:        make(chan Message, sendBufferSize),
		connectedAt: time.Now(),
	}
}

// ID returns the client identifier
func (c *Client) ID() string {
	return c.id
}

// Messages returns the channel of outgoing messages. It is closed when the
// client is unregistered or the hub shuts down.
func (c *Client) Messages() <-chan Message {
	return c.send
}

// ServeSSE streams hub messages to the client as server-sent events.
// The initial message is written straight after the connected event.
func ServeSSE(w http.ResponseWriter, r *http.Request, hub *Hub, clientID string, initial Message) {
	// Check if SSE is supported
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	client := NewClient(hub, clientID, TransportSSE)
	if !hub.Register(client) {
		http.Error(w, "Game feed closed", http.StatusGone)
		return
	}
	defer hub.Unregister(client)

	_, _ = w.Write(formatSSEMessage(Message{Event: EventConnected, Data: `{"status":"connected"}`}))
	_, _ = w.Write(formatSSEMessage(initial))
	flusher.Flush()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-client.send:
			if !ok {
				// Hub closed the channel
				return
			}
			if _, err := w.Write(formatSSEMessage(message)); err != nil {
				return
			}
			flusher.Flush()

		case <-ticker.C:
			if _, err := w.Write([]byte(": keepalive\n\n")); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
