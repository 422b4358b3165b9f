package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/dartscore-go/internal/model"
	"github.com/mcoot/dartscore-go/internal/services/bot"
	"github.com/mcoot/dartscore-go/internal/services/game"
	"github.com/mcoot/dartscore-go/internal/web/middleware"
	"github.com/mcoot/dartscore-go/internal/web/sse"
	"github.com/mcoot/dartscore-go/internal/web/views"
	"github.com/mcoot/dartscore-go/internal/web/ws"
)

// GameHandler handles the board page, its actions and live feeds
type GameHandler struct {
	gameController *game.Controller
	botService     *bot.Service
	hubManager     *sse.HubManager
	logger         *slog.Logger
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(gameController *game.Controller, botService *bot.Service, hubManager *sse.HubManager, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		botService:     botService,
		hubManager:     hubManager,
		logger:         logger,
	}
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}

func gamePath(id model.GameID) string {
	return "/games/" + string(id)
}

// backToGame redirects to the board page, flashing err if the action failed
func backToGame(w http.ResponseWriter, r *http.Request, id model.GameID, action string, err error) {
	if err != nil {
		if errors.Is(err, model.ErrGameNotFound) {
			middleware.SetFlash(w, middleware.FlashError, "Game not found")
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		middleware.SetFlash(w, middleware.FlashError, "Could not "+action+": "+err.Error())
	}
	http.Redirect(w, r, gamePath(id), http.StatusSeeOther)
}

// Home redirects to the default game, creating it on first use
func (h *GameHandler) Home(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.DefaultGame(r.Context())
	if err != nil {
		h.logger.Error("failed to load default game", slog.String("error", err.Error()))
		renderError(w, r, http.StatusInternalServerError, "Internal Server Error", "The game could not be loaded.")
		return
	}
	http.Redirect(w, r, gamePath(g.ID), http.StatusFound)
}

// View renders the board page
func (h *GameHandler) View(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.GetGame(r.Context(), gameID(r))
	if errors.Is(err, model.ErrGameNotFound) {
		renderError(w, r, http.StatusNotFound, "Game not found", "This game does not exist or was replaced by a new one.")
		return
	}
	if err != nil {
		h.logger.Error("failed to load game",
			slog.String("game_id", string(gameID(r))),
			slog.String("error", err.Error()))
		renderError(w, r, http.StatusInternalServerError, "Internal Server Error", "The game could not be loaded.")
		return
	}

	data := views.GameView{
		Game:   g,
		Layout: h.gameController.Layout(),
		Flash:  middleware.GetFlash(r.Context()),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.GamePage(data).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Click records a dart at a board position posted as form fields x and y
func (h *GameHandler) Click(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, middleware.FlashError, "Invalid form data")
		http.Redirect(w, r, gamePath(id), http.StatusSeeOther)
		return
	}

	x, errX := strconv.ParseFloat(r.FormValue("x"), 64)
	y, errY := strconv.ParseFloat(r.FormValue("y"), 64)
	if errX != nil || errY != nil {
		middleware.SetFlash(w, middleware.FlashError, "Invalid board position")
		http.Redirect(w, r, gamePath(id), http.StatusSeeOther)
		return
	}

	_, err := h.gameController.ThrowAt(r.Context(), id, x, y)
	backToGame(w, r, id, "record throw", err)
}

// Start begins the game with its current settings.
// An optional starting_score form field overrides the score.
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	g, err := h.gameController.GetGame(r.Context(), id)
	if err != nil {
		backToGame(w, r, id, "start game", err)
		return
	}

	settings := g.Settings()
	if raw := r.FormValue("starting_score"); raw != "" {
		score, err := strconv.Atoi(raw)
		if err != nil {
			middleware.SetFlash(w, middleware.FlashError, "Invalid starting score")
			http.Redirect(w, r, gamePath(id), http.StatusSeeOther)
			return
		}
		settings.StartingScore = score
	}

	_, err = h.gameController.StartGame(r.Context(), id, settings)
	backToGame(w, r, id, "start game", err)
}

// Undo removes the last dart
func (h *GameHandler) Undo(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	_, err := h.gameController.UndoLastThrow(r.Context(), id)
	backToGame(w, r, id, "undo", err)
}

// Next passes the turn on
func (h *GameHandler) Next(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	_, err := h.gameController.NextPlayer(r.Context(), id)
	backToGame(w, r, id, "change player", err)
}

// Reset starts a new game with the same roster and follows it
func (h *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	next, err := h.gameController.ResetGame(r.Context(), id)
	if err != nil {
		backToGame(w, r, id, "reset game", err)
		return
	}
	middleware.SetFlash(w, middleware.FlashInfo, "New game started")
	http.Redirect(w, r, gamePath(next.ID), http.StatusSeeOther)
}

// Bot throws one practice dart for the current player
func (h *GameHandler) Bot(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	_, dart, err := h.botService.ThrowForCurrent(r.Context(), id, r.FormValue("strategy"))
	if err == nil && dart != nil {
		middleware.SetFlash(w, middleware.FlashInfo, "Bot threw "+dart.Hit.Label())
	}
	backToGame(w, r, id, "throw for you", err)
}

// liveStart loads the game and its hub for a new live client
func (h *GameHandler) liveStart(w http.ResponseWriter, r *http.Request) (*sse.Hub, sse.Message, bool) {
	g, err := h.gameController.GetGame(r.Context(), gameID(r))
	if errors.Is(err, model.ErrGameNotFound) {
		http.Error(w, "Game not found", http.StatusNotFound)
		return nil, sse.Message{}, false
	}
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, sse.Message{}, false
	}

	initial, err := sse.SnapshotMessage(g)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, sse.Message{}, false
	}
	return h.hubManager.GetOrCreateHub(g.ID), initial, true
}

// Events streams game updates as server-sent events
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	hub, initial, ok := h.liveStart(w, r)
	if !ok {
		return
	}
	sse.ServeSSE(w, r, hub, r.RemoteAddr, initial)
}

// WebSocket streams game updates over a websocket
func (h *GameHandler) WebSocket(w http.ResponseWriter, r *http.Request) {
	hub, initial, ok := h.liveStart(w, r)
	if !ok {
		return
	}
	ws.Serve(w, r, hub, r.RemoteAddr, initial, h.logger)
}

func renderError(w http.ResponseWriter, r *http.Request, status int, title, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = views.ErrorPage(title, message).Render(r.Context(), w)
}
