package sse

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mcoot/dartscore-go/internal/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFormatSSEMessage(t *testing.T) {
	tests := []struct {
		name     string
		message  Message
		expected string
	}{
		{
			name:     "single line data",
			message:  Message{Event: "game-update", Data: `{"id":"g1"}`},
			expected: "event: game-update\ndata: {\"id\":\"g1\"}\n\n",
		},
		{
			name:     "multi-line data",
			message:  Message{Event: "game-update", Data: "{\n  \"id\": \"g1\"\n}"},
			expected: "event: game-update\ndata: {\ndata:   \"id\": \"g1\"\ndata: }\n\n",
		},
		{
			name:     "empty data",
			message:  Message{Event: "ping", Data: ""},
			expected: "event: ping\ndata: \n\n",
		},
		{
			name:     "data with carriage returns",
			message:  Message{Event: "test", Data: "line1\r\nline2"},
			expected: "event: test\ndata: line1\ndata: line2\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatSSEMessage(tt.message)
			if string(result) != tt.expected {
				t.Errorf("formatSSEMessage(%+v)\ngot:  %q\nwant: %q",
					tt.message, string(result), tt.expected)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "single line", input: "hello", expected: []string{"hello"}},
		{name: "two lines", input: "line1\nline2", expected: []string{"line1", "line2"}},
		{name: "trailing newline", input: "line1\n", expected: []string{"line1"}},
		{name: "empty string", input: "", expected: []string{""}},
		{name: "crlf line endings", input: "line1\r\nline2\r\n", expected: []string{"line1", "line2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitLines(tt.input)
			if len(result) != len(tt.expected) {
				t.Errorf("splitLines(%q) returned %d lines, want %d",
					tt.input, len(result), len(tt.expected))
				return
			}
			for i, line := range result {
				if line != tt.expected[i] {
					t.Errorf("splitLines(%q)[%d] = %q, want %q",
						tt.input, i, line, tt.expected[i])
				}
			}
		})
	}
}

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := NewHub("game-1", testLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub, "client-1", TransportSSE)
	if !hub.Register(client) {
		t.Fatal("Register() = false on a running hub")
	}

	// Give the hub time to process registration
	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 1 {
		t.Errorf("ClientCount() = %d, want 1", hub.ClientCount())
	}

	hub.Broadcast(Message{Event: "game-update", Data: "{}"})

	select {
	case msg := <-client.Messages():
		if msg.Event != "game-update" || msg.Data != "{}" {
			t.Errorf("client received %+v", msg)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("client did not receive message")
	}
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub("game-1", testLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub, "client-1", TransportSSE)
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	hub.Unregister(client)
	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d after unregister, want 0", hub.ClientCount())
	}
	if _, ok := <-client.Messages(); ok {
		t.Error("client channel still open after unregister")
	}
}

func TestHub_BroadcastToMultipleClients(t *testing.T) {
	hub := NewHub("game-1", testLogger())
	go hub.Run()
	defer hub.Close()

	clients := []*Client{
		NewClient(hub, "client-1", TransportSSE),
		NewClient(hub, "client-2", TransportWebSocket),
		NewClient(hub, "client-3", TransportSSE),
	}
	for _, c := range clients {
		hub.Register(c)
	}
	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 3 {
		t.Errorf("ClientCount() = %d, want 3", hub.ClientCount())
	}

	hub.Broadcast(Message{Event: "update", Data: "data"})

	for i, client := range clients {
		select {
		case msg := <-client.Messages():
			if msg.Event != "update" {
				t.Errorf("client %d received %+v", i+1, msg)
			}
		case <-time.After(100 * time.Millisecond):
			t.Errorf("client %d did not receive message", i+1)
		}
	}
}

func TestHub_RegisterAfterClose(t *testing.T) {
	hub := NewHub("game-1", testLogger())
	go hub.Run()
	hub.Close()
	hub.Close()

	if hub.Register(NewClient(hub, "late", TransportSSE)) {
		t.Error("Register() = true on a closed hub")
	}
}

func TestHubManager_GetOrCreateHub(t *testing.T) {
	manager := NewHubManager(testLogger())
	defer manager.Close()

	hub1 := manager.GetOrCreateHub("game-1")
	if hub1 == nil {
		t.Fatal("GetOrCreateHub returned nil")
	}
	if hub1.GameID() != "game-1" {
		t.Errorf("GameID() = %q, want game-1", hub1.GameID())
	}

	if hub2 := manager.GetOrCreateHub("game-1"); hub1 != hub2 {
		t.Error("GetOrCreateHub returned different hub for same game")
	}
	if hub3 := manager.GetOrCreateHub("game-2"); hub3 == hub1 {
		t.Error("GetOrCreateHub returned same hub for different game")
	}
}

func TestHubManager_GetHub(t *testing.T) {
	manager := NewHubManager(testLogger())
	defer manager.Close()

	if hub := manager.GetHub("missing"); hub != nil {
		t.Error("GetHub returned non-nil for non-existent hub")
	}

	created := manager.GetOrCreateHub("game-1")
	if got := manager.GetHub("game-1"); got != created {
		t.Error("GetHub returned different hub than GetOrCreateHub")
	}
}

func TestHubManager_RemoveHub(t *testing.T) {
	manager := NewHubManager(testLogger())

	manager.GetOrCreateHub("game-1")
	manager.RemoveHub("game-1")

	if got := manager.GetHub("game-1"); got != nil {
		t.Error("Hub still exists after RemoveHub")
	}

	// Removing non-existent hub should not panic
	manager.RemoveHub("missing")
}

func TestHubManager_CleanupEmptyHubs(t *testing.T) {
	manager := NewHubManager(testLogger())
	defer manager.Close()

	manager.GetOrCreateHub(model.GameID("empty"))

	active := manager.GetOrCreateHub(model.GameID("active"))
	active.Register(NewClient(active, "client-1", TransportSSE))
	time.Sleep(10 * time.Millisecond)

	manager.CleanupEmptyHubs()

	if manager.GetHub("empty") != nil {
		t.Error("Empty hub still exists after cleanup")
	}
	if manager.GetHub("active") == nil {
		t.Error("Active hub was removed during cleanup")
	}
}
