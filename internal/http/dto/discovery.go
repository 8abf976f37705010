package dto

import (
	"testnetdir.app/pulse/internal/model"
)

type DiscoveryItem struct {
	Name      string  `json:"name"`
	Slug      string  `json:"slug"`
	Category  *string `json:"category"`
	Summary   *string `json:"summary"`
	SourceURL *string `json:"sourceUrl"`
}

type RunDiscoveryResponse struct {
	Added int             `json:"added"`
	Items []DiscoveryItem `json:"items"`
}

type LatestDiscoveriesResponse struct {
	Items []DiscoveryItem `json:"items"`
}

func ToDiscoveryItems(records []model.DiscoveryRecord) []DiscoveryItem {
	items := make([]DiscoveryItem, 0, len(records))
	for _, r := range records {
		items = append(items, DiscoveryItem{
			Name:      r.Name,
			Slug:      r.Slug,
			Category:  r.Category,
			Summary:   r.Summary,
			SourceURL: r.SourceURL,
		})
	}
	return items
}
