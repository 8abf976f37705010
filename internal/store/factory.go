package store

import "testnetdir.app/pulse/core/db"

type Stores struct {
	db db.DBTX
}

func NewStores(db db.DBTX) *Stores {
	return &Stores{db: db}
}

func (s *Stores) Events() EventStore {
	return newEventStore(s.db)
}

func (s *Stores) Testnets() TestnetStore {
	return newTestnetStore(s.db)
}

func (s *Stores) Snapshots() SnapshotStore {
	return newSnapshotStore(s.db)
}

func (s *Stores) Discoveries() DiscoveryStore {
	return newDiscoveryStore(s.db)
}
