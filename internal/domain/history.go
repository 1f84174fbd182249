package domain

import (
	"time"

	"github.com/google/uuid"
)

// HistoryItem is one committed generation. Items are never mutated after
// creation; they leave the store only via Clear or capacity eviction.
type HistoryItem struct {
	ID              string        `json:"id"`
	Options         PromptOptions `json:"options"`
	GeneratedPrompt string        `json:"generatedPrompt,omitempty"`
	IsEnhanced      bool          `json:"isEnhanced,omitempty"`
	CreatedAt       string        `json:"createdAt,omitempty"`
	Tags            []string      `json:"tags,omitempty"`
}

// NewHistoryItem snapshots the given options together with a generated
// result. IDs are UUIDv7 so they stay unique and time-ordered.
func NewHistoryItem(opts PromptOptions, generated string, enhanced bool) HistoryItem {
	tags := deriveTags(opts)
	if enhanced {
		tags = append(tags, "Mejorado")
	}
	return HistoryItem{
		ID:              uuid.Must(uuid.NewV7()).String(),
		Options:         opts.Clone(),
		GeneratedPrompt: generated,
		IsEnhanced:      enhanced,
		CreatedAt:       time.Now().Format("2006-01-02"),
		Tags:            tags,
	}
}

// deriveTags labels an entry with its kind plus the most distinguishing
// populated selectors of the variant.
func deriveTags(opts PromptOptions) []string {
	tags := []string{string(opts.Type)}
	switch opts.Type {
	case KindText:
		if opts.Text != nil {
			if opts.Text.Tono != "" {
				tags = append(tags, opts.Text.Tono)
			}
			if opts.Text.Formato != "" {
				tags = append(tags, opts.Text.Formato)
			}
		}
	case KindImage:
		if opts.Image != nil && opts.Image.Estilo != "" {
			tags = append(tags, opts.Image.Estilo)
		}
	case KindCode:
		if opts.Code != nil && opts.Code.Lenguaje != "" {
			tags = append(tags, opts.Code.Lenguaje)
		}
	}
	return tags
}
