package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"testnetdir.app/pulse/core/db"
	"testnetdir.app/pulse/internal/model"
)

type snapshotStore struct {
	db db.DBTX
}

func newSnapshotStore(db db.DBTX) SnapshotStore {
	return &snapshotStore{db: db}
}

func (s *snapshotStore) Create(ctx context.Context, snapshot *model.InsightSnapshot) error {
	emerging, err := json.Marshal(snapshot.EmergingProjects)
	if err != nil {
		return fmt.Errorf("marshaling emerging projects: %w", err)
	}
	correlation, err := json.Marshal(snapshot.UserCorrelation)
	if err != nil {
		return fmt.Errorf("marshaling user correlation: %w", err)
	}
	forYou, err := json.Marshal(snapshot.ForYou)
	if err != nil {
		return fmt.Errorf("marshaling recommendations: %w", err)
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO insight_snapshots (id, top_category, emerging_projects, user_correlation, for_you, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		snapshot.ID, snapshot.TopCategory, emerging, correlation, forYou, snapshot.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting insight snapshot: %w", err)
	}
	return nil
}

func (s *snapshotStore) Latest(ctx context.Context) (*model.InsightSnapshot, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, top_category, emerging_projects, user_correlation, for_you, created_at
		FROM insight_snapshots
		ORDER BY created_at DESC
		LIMIT 1`)

	var (
		snapshot    model.InsightSnapshot
		emerging    []byte
		correlation []byte
		forYou      []byte
	)
	err := row.Scan(&snapshot.ID, &snapshot.TopCategory, &emerging, &correlation, &forYou, &snapshot.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying latest snapshot: %w", err)
	}

	if err := json.Unmarshal(emerging, &snapshot.EmergingProjects); err != nil {
		return nil, fmt.Errorf("unmarshaling emerging projects: %w", err)
	}
	if err := json.Unmarshal(correlation, &snapshot.UserCorrelation); err != nil {
		return nil, fmt.Errorf("unmarshaling user correlation: %w", err)
	}
	if err := json.Unmarshal(forYou, &snapshot.ForYou); err != nil {
		return nil, fmt.Errorf("unmarshaling recommendations: %w", err)
	}
	return &snapshot, nil
}
