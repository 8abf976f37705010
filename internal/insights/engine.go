// Package insights turns raw interaction events into ranked, explainable
// recommendations and category signals. Each computation produces a new
// immutable snapshot; nothing is updated in place.
package insights

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"testnetdir.app/pulse/common/id"
	"testnetdir.app/pulse/common/logger"
	"testnetdir.app/pulse/internal/model"
	"testnetdir.app/pulse/internal/payload"
	"testnetdir.app/pulse/internal/store"
)

// ErrCatalogUnavailable is fatal to a compute run: a snapshot without a
// valid catalog is meaningless, so nothing is persisted.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

const (
	recentDiscoveryLimit = 8
	emergingLimit        = 5
	forYouLimit          = 5
	fallbackForYouLimit  = 3
	relatedLimit         = 3
)

type Config struct {
	// Window is how far back events are read. Defaults to 14 days when zero.
	Window time.Duration
}

// SnapshotCache is an optional read-through cache for the latest snapshot.
// Cache failures are never fatal; the store remains the source of truth.
type SnapshotCache interface {
	Get(ctx context.Context) (*model.InsightSnapshot, error)
	Set(ctx context.Context, snapshot *model.InsightSnapshot) error
}

type Engine struct {
	events      store.EventStore
	testnets    store.TestnetStore
	discoveries store.DiscoveryStore
	snapshots   store.SnapshotStore
	cache       SnapshotCache
	cfg         Config
}

// NewEngine builds a correlation engine. cache may be nil.
func NewEngine(events store.EventStore, testnets store.TestnetStore, discoveries store.DiscoveryStore, snapshots store.SnapshotStore, cache SnapshotCache, cfg Config) *Engine {
	if cfg.Window <= 0 {
		cfg.Window = 14 * 24 * time.Hour
	}
	return &Engine{
		events:      events,
		testnets:    testnets,
		discoveries: discoveries,
		snapshots:   snapshots,
		cache:       cache,
		cfg:         cfg,
	}
}

// Compute runs one correlation pass over the configured window, persists the
// resulting snapshot, and returns it.
func (e *Engine) Compute(ctx context.Context) (*model.InsightSnapshot, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "pulse.insights.engine"})
	since := time.Now().Add(-e.cfg.Window)

	var (
		events   []model.InteractionEvent
		testnets []model.Testnet
		recent   []model.DiscoveryRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := e.testnets.ListAll(gctx)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
		}
		testnets = list
		return nil
	})
	g.Go(func() error {
		list, err := e.events.ListByKindsSince(gctx, []string{model.EventJoin, model.EventReadContent}, since)
		if err != nil {
			// Degraded, not fatal: a snapshot can be computed from an empty
			// window.
			slog.WarnContext(gctx, "event fetch failed, computing from empty window", "error", err)
			return nil
		}
		events = list
		return nil
	})
	g.Go(func() error {
		list, err := e.discoveries.ListRecent(gctx, recentDiscoveryLimit)
		if err != nil {
			slog.WarnContext(gctx, "recent discoveries fetch failed", "error", err)
			return nil
		}
		recent = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	catalog := make(map[string]model.Testnet, len(testnets))
	for _, t := range testnets {
		catalog[t.Slug] = t
	}

	joins := newCounter()
	categories := newCounter()
	sessions := make(map[string]*orderedSet)
	var sessionOrder []string

	for _, ev := range events {
		slug, ok := payload.EntitySlug(ev.Payload)
		if !ok {
			continue
		}
		t, known := catalog[slug]
		if !known {
			// Validation failures are dropped, not fatal.
			continue
		}

		if ev.EventName == model.EventJoin {
			joins.add(slug)
			if cat := deriveCategory(t); cat != "" {
				categories.add(cat)
			}
		}

		// Events without a session still count toward the tallies above but
		// contribute nothing to co-occurrence.
		if sid, ok := payload.SessionID(ev.Payload); ok {
			visited := sessions[sid]
			if visited == nil {
				visited = newOrderedSet()
				sessions[sid] = visited
				sessionOrder = append(sessionOrder, sid)
			}
			visited.add(slug)
		}
	}

	// Expand each session's distinct slug set into both directed pairs: one
	// co-visit of {X, Y} increments X→Y and Y→X independently.
	pairs := make(map[string]*counter)
	var pairOrder []string
	for _, sid := range sessionOrder {
		visited := sessions[sid].items()
		for i, source := range visited {
			for j, target := range visited {
				if i == j {
					continue
				}
				c := pairs[source]
				if c == nil {
					c = newCounter()
					pairs[source] = c
					pairOrder = append(pairOrder, source)
				}
				c.add(target)
			}
		}
	}

	var correlation []model.CorrelationEntry
	for _, source := range pairOrder {
		targets := pairs[source].ranked()
		if len(targets) > relatedLimit {
			targets = targets[:relatedLimit]
		}
		related := make([]string, 0, len(targets))
		for _, slug := range targets {
			related = append(related, catalog[slug].Name)
		}
		correlation = append(correlation, model.CorrelationEntry{Source: source, Related: related})
	}

	var topCategory *string
	if ranked := categories.ranked(); len(ranked) > 0 {
		topCategory = &ranked[0]
	}

	var forYou []model.Recommendation
	for _, slug := range joins.ranked() {
		if len(forYou) == forYouLimit {
			break
		}
		forYou = append(forYou, model.Recommendation{
			Slug:   slug,
			Name:   catalog[slug].Name,
			Reason: fmt.Sprintf("Popular with %d recent joins", joins.count(slug)),
		})
	}
	if len(forYou) == 0 {
		for i, rec := range recent {
			if i == fallbackForYouLimit {
				break
			}
			forYou = append(forYou, model.Recommendation{
				Slug:   rec.Slug,
				Name:   rec.Name,
				Reason: "Newly surfaced by AI discovery",
			})
		}
	}

	var emerging []model.EmergingProject
	for i, rec := range recent {
		if i == emergingLimit {
			break
		}
		emerging = append(emerging, model.EmergingProject{
			Name:      rec.Name,
			Slug:      rec.Slug,
			Category:  rec.Category,
			Summary:   rec.Summary,
			SourceURL: rec.SourceURL,
		})
	}

	snapshot := &model.InsightSnapshot{
		ID:               id.New(),
		TopCategory:      topCategory,
		EmergingProjects: emerging,
		UserCorrelation:  correlation,
		ForYou:           forYou,
		CreatedAt:        time.Now().UTC(),
	}
	if err := e.snapshots.Create(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("persisting snapshot: %w", err)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{SnapshotID: logger.Ptr(snapshot.ID)})
	slog.InfoContext(ctx, "insight snapshot computed",
		"events", len(events),
		"sessions", len(sessionOrder),
		"correlated_sources", len(correlation))

	if e.cache != nil {
		if err := e.cache.Set(ctx, snapshot); err != nil {
			slog.WarnContext(ctx, "snapshot cache set failed", "error", err)
		}
	}
	return snapshot, nil
}

// Latest returns the most recently persisted snapshot. Only when the store
// holds no snapshot at all does it compute one synchronously.
func (e *Engine) Latest(ctx context.Context) (*model.InsightSnapshot, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "pulse.insights.engine"})

	if e.cache != nil {
		snapshot, err := e.cache.Get(ctx)
		if err != nil {
			slog.WarnContext(ctx, "snapshot cache get failed", "error", err)
		} else if snapshot != nil {
			return snapshot, nil
		}
	}

	snapshot, err := e.snapshots.Latest(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return e.Compute(ctx)
		}
		return nil, fmt.Errorf("fetching latest snapshot: %w", err)
	}

	if e.cache != nil {
		if err := e.cache.Set(ctx, snapshot); err != nil {
			slog.WarnContext(ctx, "snapshot cache set failed", "error", err)
		}
	}
	return snapshot, nil
}

// counter tallies string keys while remembering first-seen order, so that
// ranking ties break on insertion order rather than map iteration.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(key string) {
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

func (c *counter) count(key string) int {
	return c.counts[key]
}

// ranked returns keys sorted by count descending, ties in insertion order.
func (c *counter) ranked() []string {
	keys := make([]string, len(c.order))
	copy(keys, c.order)
	sort.SliceStable(keys, func(i, j int) bool {
		return c.counts[keys[i]] > c.counts[keys[j]]
	})
	return keys
}

type orderedSet struct {
	seen  map[string]bool
	order []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]bool)}
}

func (s *orderedSet) add(key string) {
	if !s.seen[key] {
		s.seen[key] = true
		s.order = append(s.order, key)
	}
}

func (s *orderedSet) items() []string {
	return s.order
}
