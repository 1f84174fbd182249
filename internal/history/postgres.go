package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"promptforge/internal/domain"
)

// DBTX is the subset of pgxpool.Pool the persister needs; tests substitute
// a fake.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresPersister keeps the full history record in a single row keyed by
// RecordKey. The row mirrors the one-key durable storage contract of the
// file backend.
type PostgresPersister struct {
	db DBTX
}

// NewPostgresPersister wraps a pgx pool (or compatible executor).
func NewPostgresPersister(db DBTX) (*PostgresPersister, error) {
	if db == nil {
		return nil, errors.New("history: database handle is required")
	}
	return &PostgresPersister{db: db}, nil
}

// Load reads the record row. No row means an empty history.
func (p *PostgresPersister) Load(ctx context.Context) ([]domain.HistoryItem, error) {
	row := p.db.QueryRow(ctx, `
SELECT payload
FROM prompt_history
WHERE record_key = $1
`, RecordKey)
	var payload []byte
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("history: select record: %w", err)
	}
	var items []domain.HistoryItem
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("history: decode record: %w", err)
	}
	return items, nil
}

// Save upserts the record row.
func (p *PostgresPersister) Save(ctx context.Context, items []domain.HistoryItem) error {
	if items == nil {
		items = []domain.HistoryItem{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("history: encode record: %w", err)
	}
	_, err = p.db.Exec(ctx, `
INSERT INTO prompt_history (record_key, payload, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (record_key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()
`, RecordKey, payload)
	if err != nil {
		return fmt.Errorf("history: upsert record: %w", err)
	}
	return nil
}

var _ Persister = (*PostgresPersister)(nil)
