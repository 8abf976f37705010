package model

import "time"

// Event names the insights engine reads. The event log carries more kinds
// than these; everything else is ignored by this service.
const (
	EventJoin        = "join"
	EventReadContent = "read_content"
)

// InteractionEvent is a single row from the append-only interaction log.
// Payloads are produced by external collectors and are loosely typed; see
// the payload package for the alias-ordered decode.
type InteractionEvent struct {
	EventName  string
	Payload    map[string]any
	OccurredAt time.Time
}
