// Package provider defines the acquisition boundary: independent fetchers of
// external candidate records. Each provider is fault-isolated by the
// pipeline; a failing or timed-out provider contributes zero candidates and
// never aborts a run.
package provider

import (
	"context"

	"testnetdir.app/pulse/internal/model"
)

type Provider interface {
	Name() string
	Fetch(ctx context.Context) ([]model.DiscoveryCandidate, error)
}
