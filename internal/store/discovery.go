package store

import (
	"context"
	"encoding/json"
	"fmt"

	"testnetdir.app/pulse/core/db"
	"testnetdir.app/pulse/internal/model"
)

type discoveryStore struct {
	db db.DBTX
}

func newDiscoveryStore(db db.DBTX) DiscoveryStore {
	return &discoveryStore{db: db}
}

// Create inserts a discovery record. The slug column carries a UNIQUE
// constraint, and the slug namespace is shared with testnets via a trigger-
// enforced check, so the insert is the final arbiter under concurrent runs:
// a losing writer gets ErrDuplicateSlug instead of a second row.
func (s *discoveryStore) Create(ctx context.Context, record *model.DiscoveryRecord) error {
	metadata, err := json.Marshal(record.Metadata)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}

	tag, err := s.db.Exec(ctx, `
		INSERT INTO discovery_records (id, name, slug, network, category, summary, source_url, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (slug) DO NOTHING`,
		record.ID, record.Name, record.Slug, record.Network, record.Category,
		record.Summary, record.SourceURL, metadata, record.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting discovery record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDuplicateSlug
	}
	return nil
}

func (s *discoveryStore) ListRecent(ctx context.Context, limit int32) ([]model.DiscoveryRecord, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, slug, network, category, summary, source_url, metadata, created_at
		FROM discovery_records
		ORDER BY created_at DESC
		LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("querying discovery records: %w", err)
	}
	defer rows.Close()

	var records []model.DiscoveryRecord
	for rows.Next() {
		var (
			record   model.DiscoveryRecord
			metadata []byte
		)
		if err := rows.Scan(&record.ID, &record.Name, &record.Slug, &record.Network,
			&record.Category, &record.Summary, &record.SourceURL, &metadata, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning discovery record: %w", err)
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &record.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshaling metadata: %w", err)
			}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating discovery records: %w", err)
	}
	return records, nil
}

func (s *discoveryStore) ListSlugs(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT slug FROM discovery_records`)
	if err != nil {
		return nil, fmt.Errorf("querying discovery slugs: %w", err)
	}
	defer rows.Close()

	var slugs []string
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, fmt.Errorf("scanning discovery slug: %w", err)
		}
		slugs = append(slugs, slug)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating discovery slugs: %w", err)
	}
	return slugs, nil
}
