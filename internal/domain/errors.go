package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredential signals that no generation API key is configured.
	// It is surfaced before any network attempt.
	ErrMissingCredential = errors.New("generation api key is not configured")
	// ErrNoGeneratedPrompt signals an enhance attempt without a source prompt.
	ErrNoGeneratedPrompt = errors.New("no generated prompt to enhance")
	// ErrHistoryItemNotFound signals a lookup for an evicted or unknown entry.
	ErrHistoryItemNotFound = errors.New("history item not found")
)

// ValidationError reports an empty mandatory field. It is raised locally,
// before any call to the generation service.
type ValidationError struct {
	Field Field
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("main field %q must not be empty", e.Field)
}

// UpstreamCategory buckets failures reported by the generation service.
type UpstreamCategory string

const (
	UpstreamAuth     UpstreamCategory = "auth"
	UpstreamSafety   UpstreamCategory = "safety"
	UpstreamQuota    UpstreamCategory = "quota"
	UpstreamBilling  UpstreamCategory = "billing"
	UpstreamOverload UpstreamCategory = "overload"
	UpstreamUnknown  UpstreamCategory = "unknown"
)

// UpstreamError carries a categorized failure from the generation service.
// Detail preserves the raw upstream message for diagnosability.
type UpstreamError struct {
	Category UpstreamCategory
	Status   int
	Detail   string
}

func (e *UpstreamError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("upstream %s (status %d): %s", e.Category, e.Status, e.Detail)
	}
	return fmt.Sprintf("upstream %s: %s", e.Category, e.Detail)
}
