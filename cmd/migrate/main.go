package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"promptforge/internal/infra"
)

const schema = `
CREATE TABLE IF NOT EXISTS prompt_history (
    record_key TEXT PRIMARY KEY,
    payload    JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Applies the schema the API expects. Run once against a fresh database,
// or again after pulling a schema change; every statement is idempotent.
func main() {
	_ = godotenv.Load()

	logger := infra.NewLogger(os.Getenv("APP_ENV"))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal().Msg("DATABASE_URL is required")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to reach database")
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		logger.Fatal().Err(err).Msg("failed to apply schema")
	}

	logger.Info().Msg("schema up to date")
}
