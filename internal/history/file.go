package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"promptforge/internal/domain"
)

// FilePersister stores the history record as a JSON document on the local
// filesystem. It is the default backend when no database is configured.
type FilePersister struct {
	path string
}

// NewFilePersister validates the target path and ensures its directory exists.
func NewFilePersister(path string) (*FilePersister, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("history: file path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("history: ensure directory: %w", err)
	}
	return &FilePersister{path: path}, nil
}

// Load reads the record. A missing file is an empty history, not an error.
func (p *FilePersister) Load(ctx context.Context) ([]domain.HistoryItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("history: read record: %w", err)
	}
	var items []domain.HistoryItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("history: decode record: %w", err)
	}
	return items, nil
}

// Save rewrites the whole record. The new content goes to a sibling temp
// file first and is renamed over the record, so an interrupted write never
// leaves the sole durable copy half-written.
func (p *FilePersister) Save(ctx context.Context, items []domain.HistoryItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if items == nil {
		items = []domain.HistoryItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("history: encode record: %w", err)
	}
	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("history: write record: %w", err)
	}
	if err := os.Rename(tmp, p.path); err != nil {
		return fmt.Errorf("history: replace record: %w", err)
	}
	return nil
}

var _ Persister = (*FilePersister)(nil)
