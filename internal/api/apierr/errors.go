package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/dartscore-go/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodeGameNotFound        = "GAME_NOT_FOUND"
	CodeStatisticsNotFound  = "STATISTICS_NOT_FOUND"
	CodeInvalidName         = "INVALID_NAME"
	CodeRosterFull          = "ROSTER_FULL"
	CodeRosterLocked        = "ROSTER_LOCKED"
	CodeNoPlayers           = "NO_PLAYERS"
	CodeGameFinished        = "GAME_FINISHED"
	CodeDartsExhausted      = "DARTS_EXHAUSTED"
	CodeTurnNotComplete     = "TURN_NOT_COMPLETE"
	CodeNothingToUndo       = "NOTHING_TO_UNDO"
	CodeUnsupportedGameType = "UNSUPPORTED_GAME_TYPE"
	CodeInvalidSettings     = "INVALID_SETTINGS"
	CodeInvalidThrow        = "INVALID_THROW"
	CodeOffBoard            = "OFF_BOARD"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status an error maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrStatisticsNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeStatisticsNotFound, "No statistics recorded for this player"}}
	case errors.Is(err, model.ErrInvalidName):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidName, "Player name must not be empty"}}
	case errors.Is(err, model.ErrRosterFull):
		return &httpError{http.StatusConflict, APIError{CodeRosterFull, "The game already has the maximum number of players"}}
	case errors.Is(err, model.ErrRosterLocked):
		return &httpError{http.StatusConflict, APIError{CodeRosterLocked, "Players cannot be added or removed once the game has started"}}
	case errors.Is(err, model.ErrNoPlayers):
		return &httpError{http.StatusConflict, APIError{CodeNoPlayers, "The game has no players"}}
	case errors.Is(err, model.ErrGameFinished):
		return &httpError{http.StatusConflict, APIError{CodeGameFinished, "The game is finished"}}
	case errors.Is(err, model.ErrDartsExhausted):
		return &httpError{http.StatusConflict, APIError{CodeDartsExhausted, "All darts have been thrown this turn"}}
	case errors.Is(err, model.ErrTurnNotComplete):
		return &httpError{http.StatusConflict, APIError{CodeTurnNotComplete, "The current player has darts remaining"}}
	case errors.Is(err, model.ErrNothingToUndo):
		return &httpError{http.StatusConflict, APIError{CodeNothingToUndo, "There are no throws to undo"}}
	case errors.Is(err, model.ErrUnsupportedGameType):
		return &httpError{http.StatusBadRequest, APIError{CodeUnsupportedGameType, "Only standard501 games can be played"}}
	case errors.Is(err, model.ErrInvalidSettings):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidSettings, "Starting score must be positive"}}
	case errors.Is(err, model.ErrInvalidThrow):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidThrow, err.Error()}}
	case errors.Is(err, model.ErrOffBoard):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeOffBoard, "Position is off the board"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
