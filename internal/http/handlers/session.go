package handlers

import (
	"encoding/json"
	"net/http"

	"promptforge/internal/domain"
)

type kindRequest struct {
	Kind string `json:"kind"`
}

type fieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type dictateRequest struct {
	Field      string `json:"field"`
	Transcript string `json:"transcript"`
}

type modelRequest struct {
	Model string `json:"model"`
}

// SessionState returns the full session snapshot, track states included.
func (a *App) SessionState(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, a.Session.Snapshot())
}

// SessionKind switches the active tab. Both tracks reset to idle.
func (a *App) SessionKind(w http.ResponseWriter, r *http.Request) {
	var req kindRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	kind, err := domain.ParseKind(req.Kind)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if err := a.Session.SwitchKind(kind); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	a.json(w, http.StatusOK, a.Session.Snapshot())
}

// SessionClear resets the form of the active tab and both tracks.
func (a *App) SessionClear(w http.ResponseWriter, r *http.Request) {
	a.Session.ClearForm()
	a.json(w, http.StatusOK, a.Session.Snapshot())
}

// SessionField sets one field of the active options record.
func (a *App) SessionField(w http.ResponseWriter, r *http.Request) {
	var req fieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if err := a.Session.SetField(domain.Field(req.Field), req.Value); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	a.json(w, http.StatusOK, a.Session.Snapshot())
}

// SessionDictate appends a finalized dictation transcript to a field.
func (a *App) SessionDictate(w http.ResponseWriter, r *http.Request) {
	var req dictateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if err := a.Session.AppendTranscript(domain.Field(req.Field), req.Transcript); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	a.json(w, http.StatusOK, a.Session.Snapshot())
}

// SessionModel selects the target model used for generation hints.
func (a *App) SessionModel(w http.ResponseWriter, r *http.Request) {
	var req modelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	a.Session.SetModel(req.Model)
	a.json(w, http.StatusOK, a.Session.Snapshot())
}
