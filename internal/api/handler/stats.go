package handler

import (
	"net/http"

	"github.com/mcoot/dartscore-go/internal/api/response"
	"github.com/mcoot/dartscore-go/internal/services/game"
)

// StatsHandler handles statistics endpoints
type StatsHandler struct {
	gameController *game.Controller
}

// NewStatsHandler creates a new statistics handler
func NewStatsHandler(gameController *game.Controller) *StatsHandler {
	return &StatsHandler{gameController: gameController}
}

// Game handles GET /api/v1/games/{id}/statistics
func (h *StatsHandler) Game(w http.ResponseWriter, r *http.Request) {
	summary, err := h.gameController.Statistics(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, summary)
}

// History handles GET /api/v1/statistics
func (h *StatsHandler) History(w http.ResponseWriter, r *http.Request) {
	history, err := h.gameController.StatisticsHistory(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.StatisticsHistory{Games: history})
}

// Player handles GET /api/v1/statistics/players/{player_id}
func (h *StatsHandler) Player(w http.ResponseWriter, r *http.Request) {
	agg, err := h.gameController.PlayerStatistics(r.Context(), playerID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, agg)
}
