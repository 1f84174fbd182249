package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"promptforge/internal/domain"
	"promptforge/internal/history"
	"promptforge/internal/http/handlers"
	"promptforge/internal/session"
)

type fakeGenerator struct {
	result   string
	err      error
	readyErr error
}

func (f *fakeGenerator) Ready() error {
	return f.readyErr
}

func (f *fakeGenerator) GeneratePrompt(ctx context.Context, structuredInput, modelHint string) (string, error) {
	return f.result, f.err
}

func (f *fakeGenerator) EnhancePrompt(ctx context.Context, existingPrompt, modelHint string) (string, error) {
	return f.result + " mejorado", f.err
}

func newTestRouter(gen *fakeGenerator) (http.Handler, *history.Store) {
	logger := zerolog.Nop()
	store := history.NewStore(10, nil, logger)
	sess := session.New(gen, store, logger)
	app := handlers.NewApp(sess, store, "http://localhost:8080/", logger)
	router := NewRouter(app, Options{
		Logger:        logger,
		DefaultLocale: "en",
	})
	return router, store
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(&fakeGenerator{})
	rec := doJSON(t, router, http.MethodGet, "/v1/healthz", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	got := decode[map[string]string](t, rec)
	if got["status"] != "ok" {
		t.Fatalf("body = %v", got)
	}
}

func TestGenerateFlow(t *testing.T) {
	router, store := newTestRouter(&fakeGenerator{result: "PROMPT GENERADO"})

	rec := doJSON(t, router, http.MethodPost, "/v1/session/field",
		map[string]string{"field": "objetivo", "value": "escribir un email"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("set field status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/v1/generate", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("generate status = %d: %s", rec.Code, rec.Body.String())
	}
	snap := decode[session.Snapshot](t, rec)
	if snap.Generate.State != domain.StateSuccess || snap.Generate.Result != "PROMPT GENERADO" {
		t.Fatalf("generate track = %+v", snap.Generate)
	}
	if store.Len() != 1 {
		t.Fatalf("history Len = %d, want auto-committed entry", store.Len())
	}
}

func TestGenerateValidationLocalized(t *testing.T) {
	router, _ := newTestRouter(&fakeGenerator{})

	rec := doJSON(t, router, http.MethodPost, "/v1/generate", nil, map[string]string{"X-Locale": "es"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	got := decode[map[string]string](t, rec)
	if got["error"] != "validation" {
		t.Fatalf("error code = %q", got["error"])
	}
	if got["message"] != "El campo principal de la pestaña actual no puede estar vacío." {
		t.Fatalf("message = %q, want the Spanish validation message", got["message"])
	}
}

func TestGenerateMissingCredential(t *testing.T) {
	router, _ := newTestRouter(&fakeGenerator{readyErr: domain.ErrMissingCredential})

	doJSON(t, router, http.MethodPost, "/v1/session/field",
		map[string]string{"field": "objetivo", "value": "algo"}, nil)
	rec := doJSON(t, router, http.MethodPost, "/v1/generate", nil, nil)
	if rec.Code != http.StatusPreconditionFailed {
		t.Fatalf("status = %d, want 412", rec.Code)
	}
	got := decode[map[string]string](t, rec)
	if got["error"] != "missing_credential" {
		t.Fatalf("error code = %q", got["error"])
	}
}

func TestSessionKindSwitch(t *testing.T) {
	router, _ := newTestRouter(&fakeGenerator{})

	rec := doJSON(t, router, http.MethodPost, "/v1/session/kind", map[string]string{"kind": "Image"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	snap := decode[session.Snapshot](t, rec)
	if snap.Kind != domain.KindImage {
		t.Fatalf("Kind = %q, want Image", snap.Kind)
	}

	rec = doJSON(t, router, http.MethodPost, "/v1/session/kind", map[string]string{"kind": "Hologram"}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d for unknown kind, want 400", rec.Code)
	}
}

func TestEnhanceWithoutGeneratedPrompt(t *testing.T) {
	router, _ := newTestRouter(&fakeGenerator{result: "x"})

	rec := doJSON(t, router, http.MethodPost, "/v1/enhance", nil, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestHistoryEndpoints(t *testing.T) {
	router, _ := newTestRouter(&fakeGenerator{result: "PROMPT"})

	doJSON(t, router, http.MethodPost, "/v1/session/field",
		map[string]string{"field": "objetivo", "value": "algo"}, nil)
	doJSON(t, router, http.MethodPost, "/v1/generate", nil, nil)

	rec := doJSON(t, router, http.MethodGet, "/v1/history", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	list := decode[struct {
		Items []domain.HistoryItem `json:"items"`
	}](t, rec)
	if len(list.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(list.Items))
	}

	rec = doJSON(t, router, http.MethodPost, "/v1/history/"+list.Items[0].ID+"/select", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("select status = %d: %s", rec.Code, rec.Body.String())
	}
	snap := decode[session.Snapshot](t, rec)
	if snap.Generate.Result != "PROMPT" {
		t.Fatalf("restored result = %q", snap.Generate.Result)
	}

	rec = doJSON(t, router, http.MethodPost, "/v1/history/unknown-id/select", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("select unknown status = %d, want 404", rec.Code)
	}

	rec = doJSON(t, router, http.MethodDelete, "/v1/history", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("clear status = %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodGet, "/v1/history", nil, nil)
	list = decode[struct {
		Items []domain.HistoryItem `json:"items"`
	}](t, rec)
	if len(list.Items) != 0 {
		t.Fatalf("items = %d after clear", len(list.Items))
	}
}

func TestShareRoundTrip(t *testing.T) {
	router, _ := newTestRouter(&fakeGenerator{result: "PROMPT"})

	doJSON(t, router, http.MethodPost, "/v1/session/field",
		map[string]string{"field": "objetivo", "value": "compartir esto"}, nil)
	doJSON(t, router, http.MethodPost, "/v1/generate", nil, nil)

	rec := doJSON(t, router, http.MethodGet, "/v1/share", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("share status = %d", rec.Code)
	}
	created := decode[map[string]string](t, rec)
	if created["url"] == "" {
		t.Fatal("share url is empty")
	}

	// Apply into a fresh server, as a recipient would.
	other, _ := newTestRouter(&fakeGenerator{})
	rec = doJSON(t, other, http.MethodPost, "/v1/share/apply", map[string]string{"url": created["url"]}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("apply status = %d: %s", rec.Code, rec.Body.String())
	}
	applied := decode[struct {
		Applied bool             `json:"applied"`
		Session session.Snapshot `json:"session"`
	}](t, rec)
	if !applied.Applied {
		t.Fatal("apply reported applied=false for a valid link")
	}
	if applied.Session.Options.Text == nil || applied.Session.Options.Text.Objetivo != "compartir esto" {
		t.Fatalf("applied session = %+v", applied.Session.Options)
	}
	if applied.Session.Generate.Result != "PROMPT" {
		t.Fatalf("applied generate result = %q", applied.Session.Generate.Result)
	}
}

func TestShareApplyBrokenLink(t *testing.T) {
	router, _ := newTestRouter(&fakeGenerator{})

	rec := doJSON(t, router, http.MethodPost, "/v1/share/apply",
		map[string]string{"token": "@@not-a-token@@"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want silent 200", rec.Code)
	}
	applied := decode[map[string]any](t, rec)
	if applied["applied"] != false {
		t.Fatalf("applied = %v, want false", applied["applied"])
	}

	// Session untouched.
	snap := decode[session.Snapshot](t, doJSON(t, router, http.MethodGet, "/v1/session/", nil, nil))
	if snap.Kind != domain.KindText {
		t.Fatalf("Kind = %q after broken apply", snap.Kind)
	}
}

func TestShareApplyTokenWithoutOptions(t *testing.T) {
	router, _ := newTestRouter(&fakeGenerator{})

	// base64url of "{}": valid JSON, but no options record inside.
	rec := doJSON(t, router, http.MethodPost, "/v1/share/apply", map[string]string{"token": "e30"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want silent 200", rec.Code)
	}
	applied := decode[map[string]any](t, rec)
	if applied["applied"] != false {
		t.Fatalf("applied = %v, want false", applied["applied"])
	}

	// The session still answers and clears normally.
	rec = doJSON(t, router, http.MethodPost, "/v1/session/clear", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("clear status = %d: %s", rec.Code, rec.Body.String())
	}
	snap := decode[session.Snapshot](t, rec)
	if snap.Kind != domain.KindText || snap.Options.Text == nil {
		t.Fatalf("snapshot after clear = %+v", snap)
	}
}

func TestSaveDeduplicates(t *testing.T) {
	router, store := newTestRouter(&fakeGenerator{result: "PROMPT"})

	doJSON(t, router, http.MethodPost, "/v1/session/field",
		map[string]string{"field": "objetivo", "value": "algo"}, nil)
	doJSON(t, router, http.MethodPost, "/v1/generate", nil, nil)

	rec := doJSON(t, router, http.MethodPost, "/v1/save", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("save status = %d", rec.Code)
	}
	got := decode[map[string]bool](t, rec)
	if got["saved"] {
		t.Fatal("save stored a duplicate of the auto-committed entry")
	}
	if store.Len() != 1 {
		t.Fatalf("history Len = %d, want 1", store.Len())
	}
}
