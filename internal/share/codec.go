// Package share encodes a UI state snapshot into a URL-safe token and back.
// Decoding is deliberately lossless about failure: a bad token yields
// "absent", never an error, so page loads survive malformed links.
package share

import (
	"encoding/base64"
	"encoding/json"
	"net/url"

	"promptforge/internal/domain"
)

// QueryParam is the query parameter carrying the share token.
const QueryParam = "s"

// Encode serializes the snapshot, wraps it into a URL-safe token and embeds
// it into the page URL, returning the full shareable URL. Free-text fields
// may contain arbitrary Unicode; JSON plus base64 keeps the token printable
// ASCII and round-trip safe.
func Encode(state domain.SharedState, pageURL string) (string, error) {
	if state.Tab == "" {
		state.Tab = state.Options.Type
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return "", err
	}
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set(QueryParam, base64.RawURLEncoding.EncodeToString(raw))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Decode extracts the snapshot from a URL. The second return value reports
// presence; any missing, truncated or corrupt token is simply absent.
func Decode(rawURL string) (domain.SharedState, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return domain.SharedState{}, false
	}
	return DecodeToken(u.Query().Get(QueryParam))
}

// DecodeToken decodes a bare token value.
func DecodeToken(token string) (domain.SharedState, bool) {
	if token == "" {
		return domain.SharedState{}, false
	}
	raw, ok := decodeBase64(token)
	if !ok {
		return domain.SharedState{}, false
	}
	var state domain.SharedState
	if err := json.Unmarshal(raw, &state); err != nil {
		return domain.SharedState{}, false
	}
	// A token may be well-formed JSON and still carry no usable options
	// record; such a snapshot must never reach the session.
	if !state.Options.Valid() {
		return domain.SharedState{}, false
	}
	if state.Tab == "" {
		state.Tab = state.Options.Type
	}
	if state.Tab != state.Options.Type {
		return domain.SharedState{}, false
	}
	return state, true
}

// decodeBase64 accepts the unpadded URL alphabet this codec emits plus the
// padded standard alphabet produced by earlier link revisions.
func decodeBase64(token string) ([]byte, bool) {
	for _, enc := range []*base64.Encoding{
		base64.RawURLEncoding,
		base64.URLEncoding,
		base64.StdEncoding,
		base64.RawStdEncoding,
	} {
		if raw, err := enc.DecodeString(token); err == nil {
			return raw, true
		}
	}
	return nil, false
}
