package discovery

const (
	summaryMaxLen     = 320
	summaryTruncateAt = 317
)

// summarize produces the stored summary: the description verbatim when it
// fits, otherwise the first 317 characters plus an ellipsis marker so the
// total length is exactly 320. Counted in runes so multi-byte text is never
// split mid-character.
func summarize(description string) *string {
	if description == "" {
		return nil
	}
	runes := []rune(description)
	if len(runes) <= summaryMaxLen {
		summary := description
		return &summary
	}
	summary := string(runes[:summaryTruncateAt]) + "..."
	return &summary
}
