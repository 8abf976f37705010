package model

import "time"

// InsightSnapshot is the immutable result of one correlation engine run.
// Each run creates a new row; the latest snapshot is the one with the
// greatest CreatedAt.
type InsightSnapshot struct {
	ID               int64              `json:"-"`
	TopCategory      *string            `json:"topCategory"`
	EmergingProjects []EmergingProject  `json:"emergingProjects"`
	UserCorrelation  []CorrelationEntry `json:"userCorrelation"`
	ForYou           []Recommendation   `json:"forYou"`
	CreatedAt        time.Time          `json:"createdAt"`
}

// EmergingProject surfaces a recently discovered project verbatim.
type EmergingProject struct {
	Name      string  `json:"name"`
	Slug      string  `json:"slug"`
	Category  *string `json:"category"`
	Summary   *string `json:"summary"`
	SourceURL *string `json:"sourceUrl"`
}

// CorrelationEntry lists, for one source entity, the display names of the
// entities most often co-visited within the same sessions.
type CorrelationEntry struct {
	Source  string   `json:"source"`
	Related []string `json:"related"`
}

// Recommendation is one explainable "for you" item.
type Recommendation struct {
	Slug   string `json:"slug"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}
