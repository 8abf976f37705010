package dto

import (
	"time"

	"testnetdir.app/pulse/internal/model"
)

type InsightSnapshotResponse struct {
	TopCategory      *string                  `json:"topCategory"`
	EmergingProjects []model.EmergingProject  `json:"emergingProjects"`
	UserCorrelation  []model.CorrelationEntry `json:"userCorrelation"`
	ForYou           []model.Recommendation   `json:"forYou"`
	CreatedAt        time.Time                `json:"createdAt"`
}

func ToInsightSnapshotResponse(s *model.InsightSnapshot) InsightSnapshotResponse {
	return InsightSnapshotResponse{
		TopCategory:      s.TopCategory,
		EmergingProjects: s.EmergingProjects,
		UserCorrelation:  s.UserCorrelation,
		ForYou:           s.ForYou,
		CreatedAt:        s.CreatedAt,
	}
}
