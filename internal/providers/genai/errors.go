package genai

import (
	"strings"

	"promptforge/internal/domain"
)

// categorize buckets an upstream failure by inspecting the error detail and
// the HTTP status. The substring checks intentionally mirror the phrasing
// the service is known to use; anything unmatched stays in the unknown
// category with the raw detail preserved.
func categorize(status int, detail string) *domain.UpstreamError {
	lower := strings.ToLower(detail)
	category := domain.UpstreamUnknown
	switch {
	case strings.Contains(lower, "api key not valid"), strings.Contains(lower, "api_key_invalid"):
		category = domain.UpstreamAuth
	case strings.Contains(lower, "safety"):
		category = domain.UpstreamSafety
	case strings.Contains(lower, "quota"):
		category = domain.UpstreamQuota
	case strings.Contains(lower, "billing"):
		category = domain.UpstreamBilling
	case strings.Contains(lower, "resource exhausted"), strings.Contains(lower, "resource_exhausted"), strings.Contains(lower, "overloaded"):
		category = domain.UpstreamOverload
	case status == 401 || status == 403:
		category = domain.UpstreamAuth
	case status == 429 || status == 503:
		category = domain.UpstreamOverload
	}
	return &domain.UpstreamError{Category: category, Status: status, Detail: detail}
}
