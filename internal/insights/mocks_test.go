package insights_test

import (
	"context"
	"time"

	"testnetdir.app/pulse/internal/model"
)

type mockEventStore struct {
	listFn func(ctx context.Context, kinds []string, since time.Time) ([]model.InteractionEvent, error)
}

func (m *mockEventStore) ListByKindsSince(ctx context.Context, kinds []string, since time.Time) ([]model.InteractionEvent, error) {
	if m.listFn != nil {
		return m.listFn(ctx, kinds, since)
	}
	return nil, nil
}

type mockTestnetStore struct {
	listAllFn func(ctx context.Context) ([]model.Testnet, error)
}

func (m *mockTestnetStore) ListAll(ctx context.Context) ([]model.Testnet, error) {
	if m.listAllFn != nil {
		return m.listAllFn(ctx)
	}
	return nil, nil
}

type mockSnapshotStore struct {
	createFn func(ctx context.Context, snapshot *model.InsightSnapshot) error
	latestFn func(ctx context.Context) (*model.InsightSnapshot, error)
}

func (m *mockSnapshotStore) Create(ctx context.Context, snapshot *model.InsightSnapshot) error {
	if m.createFn != nil {
		return m.createFn(ctx, snapshot)
	}
	return nil
}

func (m *mockSnapshotStore) Latest(ctx context.Context) (*model.InsightSnapshot, error) {
	if m.latestFn != nil {
		return m.latestFn(ctx)
	}
	return nil, nil
}

type mockDiscoveryStore struct {
	createFn     func(ctx context.Context, record *model.DiscoveryRecord) error
	listRecentFn func(ctx context.Context, limit int32) ([]model.DiscoveryRecord, error)
	listSlugsFn  func(ctx context.Context) ([]string, error)
}

func (m *mockDiscoveryStore) Create(ctx context.Context, record *model.DiscoveryRecord) error {
	if m.createFn != nil {
		return m.createFn(ctx, record)
	}
	return nil
}

func (m *mockDiscoveryStore) ListRecent(ctx context.Context, limit int32) ([]model.DiscoveryRecord, error) {
	if m.listRecentFn != nil {
		return m.listRecentFn(ctx, limit)
	}
	return nil, nil
}

func (m *mockDiscoveryStore) ListSlugs(ctx context.Context) ([]string, error) {
	if m.listSlugsFn != nil {
		return m.listSlugsFn(ctx)
	}
	return nil, nil
}
