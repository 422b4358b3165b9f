package web_test

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/dartscore-go/internal/api/response"
	"github.com/mcoot/dartscore-go/internal/model"
	"github.com/mcoot/dartscore-go/internal/services/board"
	"github.com/mcoot/dartscore-go/internal/web"
	"github.com/mcoot/dartscore-go/internal/web/ws"
)

// TestSSE_EndpointHeaders verifies the SSE endpoint returns correct headers
func TestSSE_EndpointHeaders(t *testing.T) {
	ts := newWebTestServer(t)
	g := ts.createGame()

	req := httptest.NewRequest(http.MethodGet, "/games/"+string(g.ID)+"/events", nil)

	// Use a context with timeout since SSE is a long-running connection
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	req = req.WithContext(ctx)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, "text/event-stream", rr.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", rr.Header().Get("Cache-Control"))
	assert.Equal(t, "keep-alive", rr.Header().Get("Connection"))
	assert.Equal(t, "no", rr.Header().Get("X-Accel-Buffering"))
}

// TestSSE_InitialEvents verifies the connected event is followed by the current snapshot
func TestSSE_InitialEvents(t *testing.T) {
	ts := newWebTestServer(t)
	g := ts.createGame()

	req := httptest.NewRequest(http.MethodGet, "/games/"+string(g.ID)+"/events", nil)
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	req = req.WithContext(ctx)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	body := rr.Body.String()
	assert.Contains(t, body, "event: connected")
	assert.Contains(t, body, `data: {"status":"connected"}`)
	assert.Contains(t, body, "event: game-update")
	assert.Contains(t, body, `"id":"game-1"`)
	assert.Less(t, strings.Index(body, "event: connected"), strings.Index(body, "event: game-update"))
}

// TestSSE_UnknownGame verifies live feeds are only served for existing games
func TestSSE_UnknownGame(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/games/missing/events")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = ts.get("/games/missing/ws")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// liveServer runs the web router on a real listener for streaming tests
func liveServer(t *testing.T) (*webTestServer, *httptest.Server) {
	t.Helper()
	ts := newWebTestServer(t)
	server := httptest.NewServer(web.NewRouter(web.RouterConfig{
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		GameController: ts.app.GameController,
		BotService:     ts.app.BotService,
		HubManager:     ts.app.HubManager,
	}))
	t.Cleanup(server.Close)
	return ts, server
}

// sseEvent is one parsed server-sent event
type sseEvent struct {
	name string
	data string
}

// readEvent reads lines until a complete event has been received
func readEvent(t *testing.T, reader *bufio.Reader) sseEvent {
	t.Helper()
	var ev sseEvent
	for {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		switch {
		case strings.HasPrefix(line, "event: "):
			ev.name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			ev.data += strings.TrimPrefix(line, "data: ")
		case line == "" && ev.name != "":
			return ev
		}
	}
}

// TestSSE_StreamsGameUpdates verifies committed transitions reach a connected browser
func TestSSE_StreamsGameUpdates(t *testing.T) {
	ts, server := liveServer(t)
	g := ts.createGame()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/games/"+string(g.ID)+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	reader := bufio.NewReader(resp.Body)
	assert.Equal(t, "connected", readEvent(t, reader).name)
	assert.Equal(t, "game-update", readEvent(t, reader).name)

	_, err = ts.app.GameController.ThrowAt(ctx, g.ID, 0, -104)
	require.NoError(t, err)

	ev := readEvent(t, reader)
	require.Equal(t, "game-update", ev.name)

	var snapshot response.Game
	require.NoError(t, json.Unmarshal([]byte(ev.data), &snapshot))
	assert.Equal(t, 441, snapshot.Players[0].Score)
	require.Len(t, snapshot.Throws, 1)
	assert.Equal(t, "T20", snapshot.Throws[0].Label)

	require.NoError(t, ts.app.GameController.DeleteGame(ctx, g.ID))

	ev = readEvent(t, reader)
	assert.Equal(t, "game-deleted", ev.name)
	assert.JSONEq(t, `{"id":"game-1"}`, ev.data)
}

// TestWebSocket_StreamsGameUpdates verifies the websocket feed carries the same frames
func TestWebSocket_StreamsGameUpdates(t *testing.T) {
	ts, server := liveServer(t)
	g := ts.createGame()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/games/" + string(g.ID) + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var frame ws.Frame
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, "game-update", frame.Event)

	var snapshot response.Game
	require.NoError(t, json.Unmarshal(frame.Data, &snapshot))
	assert.Equal(t, "game-1", snapshot.ID)
	assert.Equal(t, string(model.PhaseNotStarted), snapshot.Phase)

	_, err = ts.app.GameController.ThrowZone(t.Context(), g.ID, 0, board.RingDouble)
	require.NoError(t, err)

	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, "game-update", frame.Event)
	require.NoError(t, json.Unmarshal(frame.Data, &snapshot))
	assert.Equal(t, 461, snapshot.Players[0].Score)
	assert.Equal(t, string(model.PhaseInProgress), snapshot.Phase)
}
