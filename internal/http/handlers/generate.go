package handlers

import (
	"errors"
	"net/http"

	"promptforge/internal/domain"
	"promptforge/internal/middleware"
	"promptforge/internal/session"
)

// Generate runs the generate pipeline. Validation and the missing-credential
// precondition are reported synchronously with a localized message; the
// session track never enters loading for them.
func (a *App) Generate(w http.ResponseWriter, r *http.Request) {
	locale := middleware.LocaleFromContext(r.Context())
	if err := a.Session.Generate(r.Context(), locale); err != nil {
		a.reportPrecall(w, locale, err)
		return
	}
	a.json(w, http.StatusOK, a.Session.Snapshot())
}

// Enhance refines the current generated prompt on the enhance track.
func (a *App) Enhance(w http.ResponseWriter, r *http.Request) {
	locale := middleware.LocaleFromContext(r.Context())
	if err := a.Session.Enhance(r.Context(), locale); err != nil {
		if errors.Is(err, domain.ErrNoGeneratedPrompt) {
			a.error(w, http.StatusConflict, "no_generated_prompt", "generate a prompt first")
			return
		}
		a.reportPrecall(w, locale, err)
		return
	}
	a.json(w, http.StatusOK, a.Session.Snapshot())
}

// Save commits the current generated prompt to history.
func (a *App) Save(w http.ResponseWriter, r *http.Request) {
	saved, err := a.Session.SaveCurrent(r.Context())
	if err != nil {
		a.error(w, http.StatusConflict, "no_generated_prompt", "generate a prompt first")
		return
	}
	a.json(w, http.StatusOK, map[string]bool{"saved": saved})
}

// SaveEnhanced commits the current enhanced prompt to history.
func (a *App) SaveEnhanced(w http.ResponseWriter, r *http.Request) {
	saved, err := a.Session.SaveEnhanced(r.Context())
	if err != nil {
		a.error(w, http.StatusConflict, "no_enhanced_prompt", "enhance a prompt first")
		return
	}
	a.json(w, http.StatusOK, map[string]bool{"saved": saved})
}

// reportPrecall maps pre-call failures (validation, credential) to HTTP
// responses carrying the localized user-facing message.
func (a *App) reportPrecall(w http.ResponseWriter, locale string, err error) {
	var validation *domain.ValidationError
	switch {
	case errors.As(err, &validation):
		a.error(w, http.StatusBadRequest, "validation", session.UserMessage(locale, err))
	case errors.Is(err, domain.ErrMissingCredential):
		a.error(w, http.StatusPreconditionFailed, "missing_credential", session.UserMessage(locale, err))
	default:
		a.error(w, http.StatusInternalServerError, "internal", session.UserMessage(locale, err))
	}
}
