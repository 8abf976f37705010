package model

import "time"

// DiscoveryCandidate is an unvetted external record considered for promotion
// into the tracked catalog. Ephemeral: produced by acquisition providers and
// never persisted directly. Empty strings mean "absent".
type DiscoveryCandidate struct {
	Name        string
	Description string
	Network     string
	Website     string
	SourceURL   string
}

// DiscoveryRecord is a promoted candidate. Persisted exactly once per
// normalized slug and never updated by the pipeline afterwards. Slugs share
// a single namespace with Testnet slugs, enforced both by the pipeline
// pre-check and by a uniqueness constraint in the store.
type DiscoveryRecord struct {
	ID        int64
	Name      string
	Slug      string
	Network   *string
	Category  *string
	Summary   *string
	SourceURL *string
	Metadata  map[string]any
	CreatedAt time.Time
}
