package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/dartscore-go/internal/middleware"
)

// Logging creates logging middleware for the board pages
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger.With(slog.String("component", "web")))
}
