// Package session is the application state machine. It owns the active
// form state and two independent request tracks (generate and enhance),
// each cycling Idle -> Loading -> Success/Error -> Idle, and coordinates
// the serializer, the generation provider and the history store.
package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"promptforge/internal/domain"
	"promptforge/internal/history"
	"promptforge/internal/promptfmt"
	"promptforge/internal/providers/genai"
)

// DefaultModel is the target model preselected for a fresh session.
const DefaultModel = "gemini-2.5-flash"

// Track is the externally visible state of one pipeline.
type Track struct {
	State  domain.AppState `json:"state"`
	Result string          `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// Snapshot is a point-in-time copy of the whole session.
type Snapshot struct {
	Kind     domain.Kind          `json:"kind"`
	Options  domain.PromptOptions `json:"options"`
	Model    string               `json:"model"`
	Generate Track                `json:"generate"`
	Enhance  Track                `json:"enhance"`
}

// Session mutations are serialized by a mutex; the external calls run
// outside the lock so reads stay responsive while a request is in flight.
// A second generate during Loading is not rejected here, mirroring the
// UI-affordance-only guard of the product.
type Session struct {
	mu       sync.Mutex
	kind     domain.Kind
	options  domain.PromptOptions
	model    string
	generate Track
	enhance  Track

	gen     genai.Generator
	history *history.Store
	logger  zerolog.Logger
}

// New starts a session on the Text tab with the default model.
func New(gen genai.Generator, hist *history.Store, logger zerolog.Logger) *Session {
	return &Session{
		kind:     domain.KindText,
		options:  domain.MustNewOptions(domain.KindText),
		model:    DefaultModel,
		generate: Track{State: domain.StateIdle},
		enhance:  Track{State: domain.StateIdle},
		gen:      gen,
		history:  hist,
		logger:   logger,
	}
}

// Snapshot returns a copy of the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		Kind:     s.kind,
		Options:  s.options.Clone(),
		Model:    s.model,
		Generate: s.generate,
		Enhance:  s.enhance,
	}
}

// SwitchKind activates another tab: fresh options, both tracks reset.
// Committed history is unaffected.
func (s *Session) SwitchKind(kind domain.Kind) error {
	opts, err := domain.NewOptions(kind)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kind = kind
	s.options = opts
	s.resetTracksLocked()
	return nil
}

// ClearForm reinitializes the active tab and resets both tracks.
func (s *Session) ClearForm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.options = domain.MustNewOptions(s.kind)
	s.resetTracksLocked()
}

func (s *Session) resetTracksLocked() {
	s.generate = Track{State: domain.StateIdle}
	s.enhance = Track{State: domain.StateIdle}
}

// SetField updates one form field.
func (s *Session) SetField(field domain.Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.options.SetField(field, value)
}

// AppendTranscript appends a finalized dictation transcript to a field.
func (s *Session) AppendTranscript(field domain.Field, transcript string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.options.AppendTranscript(field, transcript)
}

// SetModel selects the target model for subsequent calls.
func (s *Session) SetModel(model string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if model != "" {
		s.model = model
	}
}

// Generate runs the generate pipeline. Validation and the credential
// precondition are reported synchronously as an error before the track
// ever enters Loading; upstream failures land the track in Error with a
// localized message. A success is auto-committed to history.
func (s *Session) Generate(ctx context.Context, locale string) error {
	s.mu.Lock()
	structured, err := promptfmt.Build(s.options)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	// Precondition failures never show up as Loading, not even briefly.
	if err := s.gen.Ready(); err != nil {
		s.mu.Unlock()
		return err
	}
	model := s.model
	s.generate = Track{State: domain.StateLoading}
	s.enhance = Track{State: domain.StateIdle}
	s.mu.Unlock()

	result, callErr := s.gen.GeneratePrompt(ctx, structured, model)

	s.mu.Lock()
	defer s.mu.Unlock()
	if callErr != nil {
		msg := UserMessage(locale, callErr)
		s.logger.Error().Err(callErr).Msg("session: generate failed")
		s.generate = Track{State: domain.StateError, Error: msg}
		return nil
	}
	s.generate = Track{State: domain.StateSuccess, Result: result}

	item := domain.NewHistoryItem(s.options, result, false)
	if s.history != nil {
		s.history.Add(ctx, item)
	}
	return nil
}

// Enhance runs the enhance pipeline against the current generated result.
func (s *Session) Enhance(ctx context.Context, locale string) error {
	s.mu.Lock()
	if s.generate.State != domain.StateSuccess || s.generate.Result == "" {
		s.mu.Unlock()
		return domain.ErrNoGeneratedPrompt
	}
	if err := s.gen.Ready(); err != nil {
		s.mu.Unlock()
		return err
	}
	source := s.generate.Result
	model := s.model
	s.enhance = Track{State: domain.StateLoading}
	s.mu.Unlock()

	result, callErr := s.gen.EnhancePrompt(ctx, source, model)

	s.mu.Lock()
	defer s.mu.Unlock()
	if callErr != nil {
		msg := UserMessage(locale, callErr)
		s.logger.Error().Err(callErr).Msg("session: enhance failed")
		s.enhance = Track{State: domain.StateError, Error: msg}
		return nil
	}
	s.enhance = Track{State: domain.StateSuccess, Result: result}
	return nil
}

// SaveCurrent commits the generated result to history. It reports whether
// a new entry was stored (false on duplicate).
func (s *Session) SaveCurrent(ctx context.Context) (bool, error) {
	s.mu.Lock()
	if s.generate.Result == "" {
		s.mu.Unlock()
		return false, domain.ErrNoGeneratedPrompt
	}
	item := domain.NewHistoryItem(s.options, s.generate.Result, false)
	s.mu.Unlock()
	if s.history == nil {
		return false, nil
	}
	return s.history.Add(ctx, item), nil
}

// SaveEnhanced commits the enhanced result. Text options get the
// "(Mejorado)" rol prefix so the entry is recognizable in the panel.
func (s *Session) SaveEnhanced(ctx context.Context) (bool, error) {
	s.mu.Lock()
	if s.enhance.Result == "" {
		s.mu.Unlock()
		return false, domain.ErrNoGeneratedPrompt
	}
	opts := s.options.Clone()
	if opts.Type == domain.KindText && opts.Text != nil {
		opts.Text.Rol = "(Mejorado) " + opts.Text.Rol
	}
	item := domain.NewHistoryItem(opts, s.enhance.Result, true)
	s.mu.Unlock()
	if s.history == nil {
		return false, nil
	}
	return s.history.Add(ctx, item), nil
}

// SelectHistory restores kind, options and results from a committed item.
// This is pure state restoration; no external call is made.
func (s *Session) SelectHistory(id string) error {
	if s.history == nil {
		return domain.ErrHistoryItemNotFound
	}
	item, ok := s.history.Get(id)
	if !ok {
		return domain.ErrHistoryItemNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kind = item.Options.Type
	s.options = item.Options.Clone()
	if item.GeneratedPrompt == "" {
		s.resetTracksLocked()
		return nil
	}
	s.generate = Track{State: domain.StateSuccess, Result: item.GeneratedPrompt}
	if item.IsEnhanced {
		s.enhance = Track{State: domain.StateSuccess, Result: item.GeneratedPrompt}
	} else {
		s.enhance = Track{State: domain.StateIdle}
	}
	return nil
}

// ShareState snapshots the session for link sharing.
func (s *Session) ShareState() domain.SharedState {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := domain.SharedState{
		Tab:     s.kind,
		Options: s.options.Clone(),
		Model:   s.model,
	}
	if s.generate.State == domain.StateSuccess {
		state.Generated = s.generate.Result
	}
	if s.enhance.State == domain.StateSuccess {
		state.Enhanced = s.enhance.Result
	}
	return state
}

// ApplyShared restores a decoded share snapshot into the session. A
// snapshot without a usable options record is ignored so the session never
// leaves its own invariants behind.
func (s *Session) ApplyShared(state domain.SharedState) {
	if !state.Options.Valid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kind = state.Tab
	s.options = state.Options.Clone()
	if state.Model != "" {
		s.model = state.Model
	}
	s.resetTracksLocked()
	if state.Generated != "" {
		s.generate = Track{State: domain.StateSuccess, Result: state.Generated}
	}
	if state.Enhanced != "" {
		s.enhance = Track{State: domain.StateSuccess, Result: state.Enhanced}
	}
}
