package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/dartscore-go/internal/api/handler"
	"github.com/mcoot/dartscore-go/internal/api/middleware"
	"github.com/mcoot/dartscore-go/internal/api/response"
	"github.com/mcoot/dartscore-go/internal/services/bot"
	"github.com/mcoot/dartscore-go/internal/services/game"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController *game.Controller
	BotService     *bot.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	RegisterRoutes(r, cfg)
	return r
}

// RegisterRoutes mounts the API under /api/v1 on an existing router
func RegisterRoutes(r *mux.Router, cfg RouterConfig) {
	// Create handlers
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.BotService)
	playerHandler := handler.NewPlayerHandler(cfg.GameController)
	statsHandler := handler.NewStatsHandler(cfg.GameController)
	boardHandler := handler.NewBoardHandler(cfg.GameController.Layout())

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Game routes
	api.HandleFunc("/games", gameHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/games", gameHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", gameHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", gameHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/games/{id}/start", gameHandler.Start).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/throws", gameHandler.Throw).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/throws/last", gameHandler.Undo).Methods(http.MethodDelete)
	api.HandleFunc("/games/{id}/next", gameHandler.Next).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/reset", gameHandler.Reset).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/bot-throw", gameHandler.BotThrow).Methods(http.MethodPost)

	// Roster routes
	api.HandleFunc("/games/{id}/players", playerHandler.Add).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/players/{player_id}", playerHandler.Rename).Methods(http.MethodPatch)
	api.HandleFunc("/games/{id}/players/{player_id}", playerHandler.Remove).Methods(http.MethodDelete)

	// Statistics routes
	api.HandleFunc("/games/{id}/statistics", statsHandler.Game).Methods(http.MethodGet)
	api.HandleFunc("/statistics", statsHandler.History).Methods(http.MethodGet)
	api.HandleFunc("/statistics/players/{player_id}", statsHandler.Player).Methods(http.MethodGet)

	// Geometry
	api.HandleFunc("/board/resolve", boardHandler.Resolve).Methods(http.MethodPost)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}
