package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/dartscore-go/internal/api/request"
	"github.com/mcoot/dartscore-go/internal/model"
	"github.com/mcoot/dartscore-go/internal/services/game"
)

// PlayerHandler handles roster endpoints
type PlayerHandler struct {
	gameController *game.Controller
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(gameController *game.Controller) *PlayerHandler {
	return &PlayerHandler{
		gameController: gameController,
	}
}

func playerID(r *http.Request) model.PlayerID {
	return model.PlayerID(mux.Vars(r)["player_id"])
}

// Add handles POST /api/v1/games/{id}/players
func (h *PlayerHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req request.AddPlayerRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.gameController.AddPlayer(r.Context(), gameID(r), req.Name)
	writeGame(w, http.StatusCreated, g, err)
}

// Rename handles PATCH /api/v1/games/{id}/players/{player_id}
func (h *PlayerHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req request.RenamePlayerRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.gameController.RenamePlayer(r.Context(), gameID(r), playerID(r), req.Name)
	writeGame(w, http.StatusOK, g, err)
}

// Remove handles DELETE /api/v1/games/{id}/players/{player_id}
func (h *PlayerHandler) Remove(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.RemovePlayer(r.Context(), gameID(r), playerID(r))
	writeGame(w, http.StatusOK, g, err)
}
