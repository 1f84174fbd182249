package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"promptforge/internal/history"
	"promptforge/internal/session"
)

// App bundles the dependencies shared by every handler.
type App struct {
	Session       *session.Session
	History       *history.Store
	PublicBaseURL string
	Logger        zerolog.Logger
}

func NewApp(sess *session.Session, hist *history.Store, publicBaseURL string, logger zerolog.Logger) *App {
	return &App{
		Session:       sess,
		History:       hist,
		PublicBaseURL: publicBaseURL,
		Logger:        logger,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]string{"error": code, "message": message})
}
