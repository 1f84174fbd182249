package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"promptforge/internal/domain"
)

func TestFilePersisterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	p, err := NewFilePersister(path)
	if err != nil {
		t.Fatalf("NewFilePersister() error = %v", err)
	}
	ctx := context.Background()

	opts := domain.MustNewOptions(domain.KindText)
	opts.Text.Objetivo = "guardar y releer"
	items := []domain.HistoryItem{domain.NewHistoryItem(opts, "resultado", false)}

	if err := p.Save(ctx, items); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := p.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Load() returned %d items, want 1", len(got))
	}
	if got[0].ID != items[0].ID || got[0].GeneratedPrompt != "resultado" {
		t.Fatalf("Load() = %+v, want %+v", got[0], items[0])
	}
	if got[0].Options.Type != domain.KindText || got[0].Options.Text == nil {
		t.Fatalf("Load() lost the options variant: %+v", got[0].Options)
	}
}

func TestFilePersisterSaveReplacesExistingRecord(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.json")
	p, err := NewFilePersister(path)
	if err != nil {
		t.Fatalf("NewFilePersister() error = %v", err)
	}
	ctx := context.Background()

	first := []domain.HistoryItem{domain.NewHistoryItem(domain.MustNewOptions(domain.KindCode), "v1", false)}
	second := []domain.HistoryItem{domain.NewHistoryItem(domain.MustNewOptions(domain.KindCode), "v2", false)}
	if err := p.Save(ctx, first); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := p.Save(ctx, second); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := p.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 1 || got[0].GeneratedPrompt != "v2" {
		t.Fatalf("Load() = %+v, want the replaced record", got)
	}

	// The rename must not leave the intermediate file behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "history.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("directory contents = %v, want only the record", names)
	}
}

func TestFilePersisterMissingFileIsEmpty(t *testing.T) {
	p, err := NewFilePersister(filepath.Join(t.TempDir(), "never-written.json"))
	if err != nil {
		t.Fatalf("NewFilePersister() error = %v", err)
	}
	got, err := p.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Load() = %d items, want 0", len(got))
	}
}

func TestFilePersisterCorruptRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := NewFilePersister(path)
	if err != nil {
		t.Fatalf("NewFilePersister() error = %v", err)
	}
	if _, err := p.Load(context.Background()); err == nil {
		t.Fatal("Load() accepted a corrupt record")
	}

	// The store degrades to empty instead of propagating the failure.
	s := NewStore(10, p, zerolog.Nop())
	s.Load(context.Background())
	if s.Len() != 0 {
		t.Fatalf("store Len = %d, want 0 for corrupt record", s.Len())
	}
}

func TestNewFilePersisterRequiresPath(t *testing.T) {
	if _, err := NewFilePersister("  "); err == nil {
		t.Fatal("NewFilePersister accepted an empty path")
	}
}
