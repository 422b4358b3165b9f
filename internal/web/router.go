package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/dartscore-go/internal/services/bot"
	"github.com/mcoot/dartscore-go/internal/services/game"
	"github.com/mcoot/dartscore-go/internal/web/handler"
	"github.com/mcoot/dartscore-go/internal/web/middleware"
	"github.com/mcoot/dartscore-go/internal/web/sse"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController *game.Controller
	BotService     *bot.Service
	HubManager     *sse.HubManager
	StaticDir      string // Path to static files directory
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	RegisterRoutes(r, cfg)
	return r
}

// RegisterRoutes mounts the board pages and live feeds on an existing router
func RegisterRoutes(r *mux.Router, cfg RouterConfig) {
	// Create SSE hub manager if not provided
	hubManager := cfg.HubManager
	if hubManager == nil {
		hubManager = sse.NewHubManager(cfg.Logger)
		cfg.GameController.Subscribe(sse.NewBroadcaster(hubManager, cfg.Logger))
	}

	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.BotService, hubManager, cfg.Logger)

	pages := r.NewRoute().Subrouter()
	pages.Use(middleware.Recovery(cfg.Logger))
	pages.Use(middleware.Logging(cfg.Logger))

	// Static files
	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		pages.PathPrefix("/static/").Handler(staticHandler)
	}

	// Live feeds, no flash handling so a stream never eats a pending notice
	pages.HandleFunc("/games/{id}/events", gameHandler.Events).Methods(http.MethodGet)
	pages.HandleFunc("/games/{id}/ws", gameHandler.WebSocket).Methods(http.MethodGet)

	board := pages.NewRoute().Subrouter()
	board.Use(middleware.Flash())
	board.HandleFunc("/", gameHandler.Home).Methods(http.MethodGet)
	board.HandleFunc("/games/{id}", gameHandler.View).Methods(http.MethodGet)
	board.HandleFunc("/games/{id}/click", gameHandler.Click).Methods(http.MethodPost)
	board.HandleFunc("/games/{id}/start", gameHandler.Start).Methods(http.MethodPost)
	board.HandleFunc("/games/{id}/undo", gameHandler.Undo).Methods(http.MethodPost)
	board.HandleFunc("/games/{id}/next", gameHandler.Next).Methods(http.MethodPost)
	board.HandleFunc("/games/{id}/reset", gameHandler.Reset).Methods(http.MethodPost)
	board.HandleFunc("/games/{id}/bot", gameHandler.Bot).Methods(http.MethodPost)
}
