package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within
// a context. Pipeline code enriches the context once and every log statement
// downstream carries the same identifiers.
type LogFields struct {
	SnapshotID *int64  // Insight snapshot ID
	RecordID   *int64  // Discovery record ID
	Provider   *string // Acquisition provider name
	EntitySlug *string // Resolved entity slug
	SessionID  *string // Client session identifier
	Component  string  // Component name (e.g., "pulse.insights.engine")
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking
// precedence. Context timeouts and cancellation are preserved.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
// Returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, next LogFields) LogFields {
	result := existing

	if next.SnapshotID != nil {
		result.SnapshotID = next.SnapshotID
	}
	if next.RecordID != nil {
		result.RecordID = next.RecordID
	}
	if next.Provider != nil {
		result.Provider = next.Provider
	}
	if next.EntitySlug != nil {
		result.EntitySlug = next.EntitySlug
	}
	if next.SessionID != nil {
		result.SessionID = next.SessionID
	}
	if next.Component != "" {
		result.Component = next.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value.
// Useful for setting LogFields inline: logger.WithLogFields(ctx, logger.LogFields{RecordID: logger.Ptr(id)})
func Ptr[T any](v T) *T {
	return &v
}

// Truncate truncates a string to maxLen characters, appending "..." if truncated.
// Useful for logging potentially long strings like provider payloads.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
