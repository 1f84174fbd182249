// Package history owns the ordered, capped, deduplicated list of committed
// generations. The whole list is the unit of persistence: every mutation
// rewrites the single durable record.
package history

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"promptforge/internal/domain"
)

// RecordKey is the fixed name of the durable record. It matches the key the
// original app revisions stored under, so existing records stay readable.
const RecordKey = "perfectPromptSaved_v2"

// DefaultCap bounds the list when no capacity is configured. Earlier
// revisions shipped with 30; 50 is the current product decision.
const DefaultCap = 50

// Persister loads and saves the full history record.
type Persister interface {
	Load(ctx context.Context) ([]domain.HistoryItem, error)
	Save(ctx context.Context, items []domain.HistoryItem) error
}

// Store keeps history most-recent-first, deduplicated by (generated prompt,
// kind), truncated to the capacity bound on every add. Persistence failures
// are logged and never abort the in-memory mutation.
type Store struct {
	mu        sync.Mutex
	items     []domain.HistoryItem
	capacity  int
	persister Persister
	logger    zerolog.Logger
}

// NewStore builds an empty store. A nil persister keeps history in memory
// only, which tests rely on.
func NewStore(capacity int, persister Persister, logger zerolog.Logger) *Store {
	if capacity <= 0 {
		capacity = DefaultCap
	}
	return &Store{
		capacity:  capacity,
		persister: persister,
		logger:    logger,
	}
}

// Load replaces the in-memory list with the persisted record. A missing or
// corrupt record degrades to an empty list; a record longer than the
// current capacity is accepted as-is and only shrinks on the next Add.
func (s *Store) Load(ctx context.Context) {
	if s.persister == nil {
		return
	}
	items, err := s.persister.Load(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("history: load failed, starting empty")
		return
	}
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}

// Add commits an item unless an entry with the same generated prompt and
// kind already exists. It reports whether the item was stored.
func (s *Store) Add(ctx context.Context, item domain.HistoryItem) bool {
	s.mu.Lock()
	for _, existing := range s.items {
		if existing.GeneratedPrompt == item.GeneratedPrompt && existing.Options.Type == item.Options.Type {
			s.mu.Unlock()
			return false
		}
	}
	s.items = append([]domain.HistoryItem{item}, s.items...)
	if len(s.items) > s.capacity {
		s.items = s.items[:s.capacity]
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	return true
}

// Clear empties the store unconditionally.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()

	s.persist(ctx, nil)
}

// Items returns a copy of the list, most recent first.
func (s *Store) Items() []domain.HistoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Get finds a committed item by ID.
func (s *Store) Get(id string) (domain.HistoryItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return domain.HistoryItem{}, false
}

// Len reports the current number of entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) snapshotLocked() []domain.HistoryItem {
	out := make([]domain.HistoryItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) persist(ctx context.Context, items []domain.HistoryItem) {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(ctx, items); err != nil {
		s.logger.Warn().Err(err).Msg("history: persist failed, keeping in-memory state")
	}
}
