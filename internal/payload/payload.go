// Package payload decodes the loosely typed interaction event payloads
// produced by external collectors. Collectors disagree on key names, so each
// field is resolved through a fixed alias order; the first alias holding a
// non-empty string wins.
package payload

// Alias orders are a compatibility contract: reordering changes which value
// wins when a collector sends more than one key.
var (
	slugKeys    = []string{"entitySlug", "slug", "testnet"}
	sessionKeys = []string{"sessionId", "session_id", "session"}
)

// EntitySlug resolves the target entity slug from a payload.
// Returns ("", false) when no alias holds a usable value.
func EntitySlug(p map[string]any) (string, bool) {
	return firstString(p, slugKeys)
}

// SessionID resolves the client session identifier from a payload.
// Returns ("", false) when no alias holds a usable value.
func SessionID(p map[string]any) (string, bool) {
	return firstString(p, sessionKeys)
}

func firstString(p map[string]any, keys []string) (string, bool) {
	for _, key := range keys {
		if v, ok := p[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s, true
			}
		}
	}
	return "", false
}
