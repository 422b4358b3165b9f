package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/dartscore-go/internal/api/request"
	"github.com/mcoot/dartscore-go/internal/api/response"
	"github.com/mcoot/dartscore-go/internal/model"
	"github.com/mcoot/dartscore-go/internal/services/board"
	"github.com/mcoot/dartscore-go/internal/services/bot"
	"github.com/mcoot/dartscore-go/internal/services/game"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	gameController *game.Controller
	botService     *bot.Service
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController *game.Controller, botService *bot.Service) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		botService:     botService,
	}
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}

// writeGame writes a game snapshot or the error that prevented it
func writeGame(w http.ResponseWriter, status int, g *model.GameState, err error) {
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, status, response.GameFromModel(g))
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.gameController.CreateGame(r.Context(), req.PlayerNames)
	writeGame(w, http.StatusCreated, g, err)
}

// List handles GET /api/v1/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	infos, err := h.gameController.ListGames(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameListFromModel(infos))
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.GetGame(r.Context(), gameID(r))
	writeGame(w, http.StatusOK, g, err)
}

// Delete handles DELETE /api/v1/games/{id}
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.gameController.DeleteGame(r.Context(), gameID(r)); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Start handles POST /api/v1/games/{id}/start
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req request.StartGameRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	settings := model.DefaultSettings()
	if req.GameType != "" {
		settings.GameType = model.GameType(req.GameType)
	}
	if req.StartingScore != 0 {
		settings.StartingScore = req.StartingScore
	}
	if req.DoubleOut != nil {
		settings.DoubleOut = *req.DoubleOut
	}

	g, err := h.gameController.StartGame(r.Context(), gameID(r), settings)
	writeGame(w, http.StatusOK, g, err)
}

// Throw handles POST /api/v1/games/{id}/throws
func (h *GameHandler) Throw(w http.ResponseWriter, r *http.Request) {
	var req request.ThrowRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	ctx := r.Context()
	id := gameID(r)

	var g *model.GameState
	var err error
	switch {
	case req.Ring != "":
		if req.SectorIndex == nil && !board.Ring(req.Ring).IsBull() {
			WriteError(w, NewInvalidRequestError("sector_index is required for numbered rings"))
			return
		}
		index := 0
		if req.SectorIndex != nil {
			index = *req.SectorIndex
		}
		g, err = h.gameController.ThrowZone(ctx, id, index, board.Ring(req.Ring))
	case req.X != nil || req.Y != nil:
		if req.X == nil || req.Y == nil {
			WriteError(w, NewInvalidRequestError("both x and y are required"))
			return
		}
		g, err = h.gameController.ThrowAt(ctx, id, *req.X, *req.Y)
	case req.Sector != nil:
		multiplier := model.Multiplier(req.Multiplier)
		if multiplier == "" {
			multiplier = model.MultiplierSingle
		}
		g, err = h.gameController.Throw(ctx, id, *req.Sector, multiplier)
	default:
		WriteError(w, NewInvalidRequestError("a throw needs sector, ring or x/y"))
		return
	}

	writeGame(w, http.StatusCreated, g, err)
}

// Undo handles DELETE /api/v1/games/{id}/throws/last
func (h *GameHandler) Undo(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.UndoLastThrow(r.Context(), gameID(r))
	writeGame(w, http.StatusOK, g, err)
}

// Next handles POST /api/v1/games/{id}/next
func (h *GameHandler) Next(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.NextPlayer(r.Context(), gameID(r))
	writeGame(w, http.StatusOK, g, err)
}

// Reset handles POST /api/v1/games/{id}/reset
func (h *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.ResetGame(r.Context(), gameID(r))
	writeGame(w, http.StatusOK, g, err)
}

// BotThrow handles POST /api/v1/games/{id}/bot-throw
func (h *GameHandler) BotThrow(w http.ResponseWriter, r *http.Request) {
	var req request.BotThrowRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	var g *model.GameState
	var darts []bot.Dart
	var err error
	if req.FullTurn {
		g, darts, err = h.botService.PlayTurn(r.Context(), gameID(r), req.Strategy)
	} else {
		var dart *bot.Dart
		g, dart, err = h.botService.ThrowForCurrent(r.Context(), gameID(r), req.Strategy)
		if dart != nil {
			darts = []bot.Dart{*dart}
		}
	}
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.BotThrowResponse{
		Darts: make([]response.BotDart, len(darts)),
		Game:  response.GameFromModel(g),
	}
	for i, d := range darts {
		resp.Darts[i] = response.BotDart{
			X:        d.X,
			Y:        d.Y,
			OnBoard:  d.OnBoard,
			Hit:      response.HitFromModel(d.Hit),
			Strategy: d.Strategy,
		}
	}
	response.JSON(w, http.StatusCreated, resp)
}
