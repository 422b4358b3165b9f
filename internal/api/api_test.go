package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/dartscore-go/internal/api"
	"github.com/mcoot/dartscore-go/internal/api/response"
	"github.com/mcoot/dartscore-go/internal/factory"
	"github.com/mcoot/dartscore-go/internal/model"
)

// testServer wires the API router to an app with mocked clock and ids
type testServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app := factory.NewTestApp()
	t.Cleanup(func() { _ = app.Close(context.Background()) })

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		GameController: app.GameController,
		BotService:     app.BotService,
	})

	return &testServer{t: t, handler: router, app: app}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// decode unmarshals the response body into v
func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func assertError(t *testing.T, rr *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	assert.Equal(t, status, rr.Code, rr.Body.String())
	assert.Equal(t, code, decode[errorBody](t, rr).Error.Code)
}

// createGame creates a two-player game with ids game-1, alice and bob
func (ts *testServer) createGame() response.Game {
	ts.t.Helper()
	ts.app.MockRandom.QueueID("game-1", "alice", "bob")
	rr := ts.request(http.MethodPost, "/api/v1/games", map[string]any{"player_names": []string{"Alice", "Bob"}})
	require.Equal(ts.t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[response.Game](ts.t, rr)
}

func (ts *testServer) throw(gameID string, body map[string]any) *httptest.ResponseRecorder {
	return ts.request(http.MethodPost, "/api/v1/games/"+gameID+"/throws", body)
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestCreateGameDefaults(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/games", nil)
	require.Equal(t, http.StatusCreated, rr.Code)

	g := decode[response.Game](t, rr)
	assert.Len(t, g.Players, 3)
	assert.Equal(t, "Player 1", g.Players[0].Name)
	assert.True(t, g.Players[0].IsCurrentPlayer)
	assert.Equal(t, 501, g.StartingScore)
	assert.True(t, g.DoubleOut)
	assert.Equal(t, "not_started", g.Phase)
	assert.Nil(t, g.Winner)
}

func TestGetListDeleteGame(t *testing.T) {
	ts := newTestServer(t)
	g := ts.createGame()

	rr := ts.request(http.MethodGet, "/api/v1/games/"+g.ID, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/games", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	list := decode[response.GameList](t, rr)
	require.Len(t, list.Games, 1)
	assert.Equal(t, "game-1", list.Games[0].ID)
	assert.Equal(t, 2, list.Games[0].PlayerCount)

	rr = ts.request(http.MethodDelete, "/api/v1/games/"+g.ID, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/games/"+g.ID, nil)
	assertError(t, rr, http.StatusNotFound, "GAME_NOT_FOUND")
}

func TestRosterOperations(t *testing.T) {
	ts := newTestServer(t)
	g := ts.createGame()
	base := "/api/v1/games/" + g.ID

	ts.app.MockRandom.QueueID("carol")
	rr := ts.request(http.MethodPost, base+"/players", map[string]string{"name": "  Carol  "})
	require.Equal(t, http.StatusCreated, rr.Code)
	g = decode[response.Game](t, rr)
	require.Len(t, g.Players, 3)
	assert.Equal(t, "Carol", g.Players[2].Name)
	assert.Equal(t, 501, g.Players[2].Score)

	rr = ts.request(http.MethodPost, base+"/players", map[string]string{"name": "   "})
	assertError(t, rr, http.StatusBadRequest, "INVALID_NAME")

	rr = ts.request(http.MethodPatch, base+"/players/bob", map[string]string{"name": "Robert"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Robert", decode[response.Game](t, rr).Players[1].Name)

	rr = ts.request(http.MethodPatch, base+"/players/nobody", map[string]string{"name": "X"})
	assertError(t, rr, http.StatusNotFound, "PLAYER_NOT_FOUND")

	rr = ts.request(http.MethodDelete, base+"/players/carol", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[response.Game](t, rr).Players, 2)

	// The roster locks once darts are thrown
	rr = ts.throw(g.ID, map[string]any{"sector": 20, "multiplier": "single"})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodPost, base+"/players", map[string]string{"name": "Dave"})
	assertError(t, rr, http.StatusConflict, "ROSTER_LOCKED")
	rr = ts.request(http.MethodDelete, base+"/players/bob", nil)
	assertError(t, rr, http.StatusConflict, "ROSTER_LOCKED")

	// Renaming is still allowed
	rr = ts.request(http.MethodPatch, base+"/players/alice", map[string]string{"name": "Ali"})
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestStartGame(t *testing.T) {
	ts := newTestServer(t)
	g := ts.createGame()
	base := "/api/v1/games/" + g.ID

	rr := ts.request(http.MethodPost, base+"/start", map[string]any{"game_type": "cricket"})
	assertError(t, rr, http.StatusBadRequest, "UNSUPPORTED_GAME_TYPE")

	rr = ts.request(http.MethodPost, base+"/start", map[string]any{"starting_score": 301, "double_out": false})
	require.Equal(t, http.StatusOK, rr.Code)
	g = decode[response.Game](t, rr)
	assert.Equal(t, "in_progress", g.Phase)
	assert.Equal(t, 301, g.StartingScore)
	assert.False(t, g.DoubleOut)
	for _, p := range g.Players {
		assert.Equal(t, 301, p.Score)
	}
}

func TestThrowModes(t *testing.T) {
	ts := newTestServer(t)
	g := ts.createGame()

	// Sector and multiplier
	rr := ts.throw(g.ID, map[string]any{"sector": 20, "multiplier": "triple"})
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, 441, decode[response.Game](t, rr).Players[0].Score)

	// Zone: index 0 is the 20 wedge
	rr = ts.throw(g.ID, map[string]any{"sector_index": 0, "ring": "double"})
	require.Equal(t, http.StatusCreated, rr.Code)
	g = decode[response.Game](t, rr)
	assert.Equal(t, 401, g.Players[0].Score)
	assert.Equal(t, "D20", g.Throws[1].Label)

	// Point on the outer bull
	rr = ts.throw(g.ID, map[string]any{"x": 0, "y": 15})
	require.Equal(t, http.StatusCreated, rr.Code)
	g = decode[response.Game](t, rr)
	assert.Equal(t, 376, g.Players[0].Score)
	assert.Equal(t, 3, g.Players[0].DartsThrown)

	// Fourth dart is refused
	rr = ts.throw(g.ID, map[string]any{"sector": 1})
	assertError(t, rr, http.StatusConflict, "DARTS_EXHAUSTED")
}

func TestThrowValidation(t *testing.T) {
	ts := newTestServer(t)
	g := ts.createGame()

	tests := []struct {
		name   string
		body   map[string]any
		status int
		code   string
	}{
		{"empty body", map[string]any{}, http.StatusBadRequest, "INVALID_REQUEST"},
		{"bad sector", map[string]any{"sector": 21}, http.StatusBadRequest, "INVALID_THROW"},
		{"bad multiplier", map[string]any{"sector": 20, "multiplier": "quad"}, http.StatusBadRequest, "INVALID_THROW"},
		{"triple bull", map[string]any{"sector": 25, "multiplier": "triple"}, http.StatusBadRequest, "INVALID_THROW"},
		{"bad ring", map[string]any{"sector_index": 0, "ring": "moat"}, http.StatusBadRequest, "INVALID_THROW"},
		{"ring without index", map[string]any{"ring": "triple"}, http.StatusBadRequest, "INVALID_REQUEST"},
		{"half a point", map[string]any{"x": 10}, http.StatusBadRequest, "INVALID_REQUEST"},
		{"off board", map[string]any{"x": 300, "y": 0}, http.StatusUnprocessableEntity, "OFF_BOARD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.throw(g.ID, tt.body)
			assertError(t, rr, tt.status, tt.code)
		})
	}

	// None of the rejected throws were recorded
	rr := ts.request(http.MethodGet, "/api/v1/games/"+g.ID, nil)
	assert.Empty(t, decode[response.Game](t, rr).Throws)
}

func TestUndoNextAndReset(t *testing.T) {
	ts := newTestServer(t)
	g := ts.createGame()
	base := "/api/v1/games/" + g.ID

	rr := ts.request(http.MethodDelete, base+"/throws/last", nil)
	assertError(t, rr, http.StatusConflict, "NOTHING_TO_UNDO")

	rr = ts.request(http.MethodPost, base+"/next", nil)
	assertError(t, rr, http.StatusConflict, "TURN_NOT_COMPLETE")

	for range 3 {
		rr = ts.throw(g.ID, map[string]any{"sector": 19, "multiplier": "single"})
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	rr = ts.request(http.MethodDelete, base+"/throws/last", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	g = decode[response.Game](t, rr)
	assert.Equal(t, 463, g.Players[0].Score)
	assert.Equal(t, 2, g.Players[0].DartsThrown)

	rr = ts.throw(g.ID, map[string]any{"sector": 19})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodPost, base+"/next", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	g = decode[response.Game](t, rr)
	assert.Equal(t, 1, g.CurrentPlayerIndex)
	require.Len(t, g.Turns, 1)
	assert.Equal(t, 57, g.Turns[0].TotalPoints)
	assert.Equal(t, "Alice", g.Turns[0].PlayerName)

	rr = ts.request(http.MethodPost, base+"/reset", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	next := decode[response.Game](t, rr)
	assert.NotEqual(t, g.ID, next.ID)
	assert.Equal(t, "not_started", next.Phase)
	assert.Empty(t, next.Throws)
	assert.Equal(t, []string{"Alice", "Bob"}, []string{next.Players[0].Name, next.Players[1].Name})

	rr = ts.request(http.MethodGet, base, nil)
	assertError(t, rr, http.StatusNotFound, "GAME_NOT_FOUND")
}

func TestFinishAndStatistics(t *testing.T) {
	ts := newTestServer(t)
	g := ts.createGame()
	base := "/api/v1/games/" + g.ID

	rr := ts.request(http.MethodPost, base+"/start", map[string]any{"starting_score": 40})
	require.Equal(t, http.StatusOK, rr.Code)

	// Single 40 is impossible; 20 then a bust on 18, then D10 finishes
	rr = ts.throw(g.ID, map[string]any{"sector": 20})
	require.Equal(t, http.StatusCreated, rr.Code)
	rr = ts.throw(g.ID, map[string]any{"sector": 18, "multiplier": "double"})
	require.Equal(t, http.StatusCreated, rr.Code)
	g = decode[response.Game](t, rr)
	assert.False(t, g.Throws[1].Applied)
	assert.Equal(t, 20, g.Players[0].Score)

	rr = ts.throw(g.ID, map[string]any{"sector": 10, "multiplier": "double"})
	require.Equal(t, http.StatusCreated, rr.Code)
	g = decode[response.Game](t, rr)
	assert.True(t, g.IsFinished)
	assert.Equal(t, "finished", g.Phase)
	require.NotNil(t, g.Winner)
	assert.Equal(t, "alice", *g.Winner)

	rr = ts.throw(g.ID, map[string]any{"sector": 1})
	assertError(t, rr, http.StatusConflict, "GAME_FINISHED")

	rr = ts.request(http.MethodGet, base+"/statistics", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	summary := decode[model.GameStatistics](t, rr)
	assert.Equal(t, model.PlayerID("alice"), summary.Winner)

	ts.app.Exporter.Wait()

	rr = ts.request(http.MethodGet, "/api/v1/statistics", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[response.StatisticsHistory](t, rr).Games, 1)

	rr = ts.request(http.MethodGet, "/api/v1/statistics/players/alice", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	agg := decode[model.PlayerAggregate](t, rr)
	assert.Equal(t, 1, agg.Wins)

	rr = ts.request(http.MethodGet, "/api/v1/statistics/players/nobody", nil)
	assertError(t, rr, http.StatusNotFound, "STATISTICS_NOT_FOUND")
}

func TestBotThrow(t *testing.T) {
	ts := newTestServer(t)
	g := ts.createGame()
	base := "/api/v1/games/" + g.ID

	// Random strategy at the centre scores the inner bull
	ts.app.MockRandom.QueueFloat(0, 0)
	rr := ts.request(http.MethodPost, base+"/bot-throw", nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	resp := decode[response.BotThrowResponse](t, rr)
	require.Len(t, resp.Darts, 1)
	assert.Equal(t, "BULL", resp.Darts[0].Hit.Label)
	assert.Equal(t, 451, resp.Game.Players[0].Score)

	// A full turn uses the remaining darts
	rr = ts.request(http.MethodPost, base+"/bot-throw", map[string]any{"full_turn": true, "strategy": "aimed"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	resp = decode[response.BotThrowResponse](t, rr)
	assert.Len(t, resp.Darts, 2)
	assert.Equal(t, 3, resp.Game.Players[0].DartsThrown)

	rr = ts.request(http.MethodPost, base+"/bot-throw", map[string]any{"strategy": "psychic"})
	assertError(t, rr, http.StatusBadRequest, "INVALID_THROW")
}

func TestResolveBoard(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/board/resolve", map[string]any{"x": 0, "y": -104})
	require.Equal(t, http.StatusOK, rr.Code)
	res := decode[response.Resolution](t, rr)
	require.True(t, res.OnBoard)
	assert.Equal(t, "T20", res.Hit.Label)

	rr = ts.request(http.MethodPost, "/api/v1/board/resolve", map[string]any{"x": 300, "y": 0})
	require.Equal(t, http.StatusOK, rr.Code)
	res = decode[response.Resolution](t, rr)
	assert.False(t, res.OnBoard)
	assert.Nil(t, res.Hit)

	rr = ts.request(http.MethodPost, "/api/v1/board/resolve", map[string]any{"ring": "outer_bull"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 25, decode[response.Resolution](t, rr).Hit.Points)
}

func TestMalformedBody(t *testing.T) {
	ts := newTestServer(t)
	g := ts.createGame()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/games/"+g.ID+"/throws", bytes.NewBufferString("{not json"))
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	assertError(t, rr, http.StatusBadRequest, "INVALID_REQUEST")
}
