package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"promptforge/internal/http/handlers"
	"promptforge/internal/middleware"
)

// Options carries the cross-cutting settings the router wires into its
// middleware chain.
type Options struct {
	Logger          zerolog.Logger
	AllowedOrigins  []string
	DefaultLocale   string
	CountryLookup   middleware.CountryLookup
	RateLimitPerMin int
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(opts.Logger),
		middleware.CORS(opts.AllowedOrigins),
		middleware.Locale(opts.DefaultLocale, opts.CountryLookup),
	)
	if opts.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
	}

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/session", func(r chi.Router) {
		r.Get("/", app.SessionState)
		r.Post("/kind", app.SessionKind)
		r.Post("/clear", app.SessionClear)
		r.Post("/field", app.SessionField)
		r.Post("/dictate", app.SessionDictate)
		r.Post("/model", app.SessionModel)
	})

	r.Post("/v1/generate", app.Generate)
	r.Post("/v1/enhance", app.Enhance)
	r.Post("/v1/save", app.Save)
	r.Post("/v1/save-enhanced", app.SaveEnhanced)

	r.Route("/v1/history", func(r chi.Router) {
		r.Get("/", app.HistoryList)
		r.Delete("/", app.HistoryClear)
		r.Post("/{id}/select", app.HistorySelect)
	})

	r.Get("/v1/share", app.ShareCreate)
	r.Post("/v1/share/apply", app.ShareApply)

	return r
}
