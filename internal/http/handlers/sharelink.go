package handlers

import (
	"encoding/json"
	"net/http"

	"promptforge/internal/share"
)

type shareApplyRequest struct {
	URL   string `json:"url,omitempty"`
	Token string `json:"token,omitempty"`
}

// ShareCreate encodes the current session snapshot into a shareable URL.
func (a *App) ShareCreate(w http.ResponseWriter, r *http.Request) {
	url, err := share.Encode(a.Session.ShareState(), a.PublicBaseURL)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to build share url")
		return
	}
	a.json(w, http.StatusOK, map[string]string{"url": url})
}

// ShareApply restores a shared snapshot into the session. A missing or
// malformed token is not an error: the session is left untouched and
// applied=false is reported, so page loads with bad links never fail.
func (a *App) ShareApply(w http.ResponseWriter, r *http.Request) {
	var req shareApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	state, ok := share.DecodeToken(req.Token)
	if !ok && req.URL != "" {
		state, ok = share.Decode(req.URL)
	}
	if !ok {
		a.json(w, http.StatusOK, map[string]any{"applied": false})
		return
	}
	a.Session.ApplyShared(state)
	a.json(w, http.StatusOK, map[string]any{
		"applied": true,
		"session": a.Session.Snapshot(),
	})
}
