package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"promptforge/internal/domain"
)

// HistoryList returns the committed history, most recent first.
func (a *App) HistoryList(w http.ResponseWriter, r *http.Request) {
	items := a.History.Items()
	if items == nil {
		items = []domain.HistoryItem{}
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

// HistoryClear empties the store. Confirmation is a client concern.
func (a *App) HistoryClear(w http.ResponseWriter, r *http.Request) {
	a.History.Clear(r.Context())
	a.json(w, http.StatusOK, map[string]any{"items": []domain.HistoryItem{}})
}

// HistorySelect restores a committed item into the session without calling
// the generation service.
func (a *App) HistorySelect(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := a.Session.SelectHistory(id); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "history item not found")
		return
	}
	a.json(w, http.StatusOK, a.Session.Snapshot())
}
