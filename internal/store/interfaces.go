package store

import (
	"context"
	"errors"
	"time"

	"testnetdir.app/pulse/internal/model"
)

// ErrNotFound is returned when a requested row does not exist
var ErrNotFound = errors.New("not found")

// ErrDuplicateSlug is returned when an insert is ignored because a row with
// the same slug already exists. The database-level uniqueness constraint is
// what makes concurrent pipeline runs safe; callers treat this as a skip,
// not a failure.
var ErrDuplicateSlug = errors.New("duplicate slug")

// EventStore reads the append-only interaction event log
type EventStore interface {
	ListByKindsSince(ctx context.Context, kinds []string, since time.Time) ([]model.InteractionEvent, error)
}

// TestnetStore reads the tracked entity catalog. The catalog is small enough
// to load wholesale.
type TestnetStore interface {
	ListAll(ctx context.Context) ([]model.Testnet, error)
}

// SnapshotStore persists insight snapshots append-only
type SnapshotStore interface {
	Create(ctx context.Context, snapshot *model.InsightSnapshot) error
	Latest(ctx context.Context) (*model.InsightSnapshot, error)
}

// DiscoveryStore persists discovery records
type DiscoveryStore interface {
	Create(ctx context.Context, record *model.DiscoveryRecord) error
	ListRecent(ctx context.Context, limit int32) ([]model.DiscoveryRecord, error)
	ListSlugs(ctx context.Context) ([]string, error)
}
