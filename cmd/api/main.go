package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"promptforge/internal/history"
	"promptforge/internal/http/handlers"
	"promptforge/internal/http/httpapi"
	"promptforge/internal/infra"
	"promptforge/internal/infra/geoip"
	"promptforge/internal/middleware"
	"promptforge/internal/providers/genai"
	"promptforge/internal/session"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()

	// History persistence: Postgres when configured, local file otherwise.
	var persister history.Persister
	if cfg.DatabaseURL != "" {
		pool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect database")
		}
		defer pool.Close()
		persister, err = history.NewPostgresPersister(pool)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to build history persister")
		}
	} else {
		persister, err = history.NewFilePersister(cfg.HistoryPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to prepare history file")
		}
	}

	store := history.NewStore(cfg.HistoryCap, persister, logger)
	store.Load(ctx)

	// Locale detection falls back gracefully when no GeoIP database is
	// present.
	var lookup middleware.CountryLookup
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip database unavailable, skipping country detection")
	} else if resolver != nil {
		lookup = resolver.CountryCode
	}

	gen := genai.NewClient(genai.Options{
		APIKey:  cfg.GeminiAPIKey,
		BaseURL: cfg.GeminiBaseURL,
	})
	sess := session.New(gen, store, logger)

	app := handlers.NewApp(sess, store, cfg.PublicBaseURL, logger)
	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:          logger,
		AllowedOrigins:  cfg.AllowedOrigins,
		DefaultLocale:   cfg.DefaultLocale,
		CountryLookup:   lookup,
		RateLimitPerMin: cfg.RateLimitPerMin,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
