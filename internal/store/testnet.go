package store

import (
	"context"
	"fmt"

	"testnetdir.app/pulse/core/db"
	"testnetdir.app/pulse/internal/model"
)

type testnetStore struct {
	db db.DBTX
}

func newTestnetStore(db db.DBTX) TestnetStore {
	return &testnetStore{db: db}
}

func (s *testnetStore) ListAll(ctx context.Context) ([]model.Testnet, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, slug, display_name, categories, tags, network
		FROM testnets`)
	if err != nil {
		return nil, fmt.Errorf("querying testnets: %w", err)
	}
	defer rows.Close()

	var testnets []model.Testnet
	for rows.Next() {
		var t model.Testnet
		if err := rows.Scan(&t.ID, &t.Slug, &t.Name, &t.Categories, &t.Tags, &t.Network); err != nil {
			return nil, fmt.Errorf("scanning testnet: %w", err)
		}
		testnets = append(testnets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating testnets: %w", err)
	}
	return testnets, nil
}
