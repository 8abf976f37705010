package insights_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"testnetdir.app/pulse/common/id"
	"testnetdir.app/pulse/internal/insights"
	"testnetdir.app/pulse/internal/model"
	"testnetdir.app/pulse/internal/store"
)

func joinEvent(slug, session string) model.InteractionEvent {
	p := map[string]any{"entitySlug": slug}
	if session != "" {
		p["sessionId"] = session
	}
	return model.InteractionEvent{EventName: model.EventJoin, Payload: p, OccurredAt: time.Now()}
}

func readEvent(slug, session string) model.InteractionEvent {
	p := map[string]any{"slug": slug}
	if session != "" {
		p["session_id"] = session
	}
	return model.InteractionEvent{EventName: model.EventReadContent, Payload: p, OccurredAt: time.Now()}
}

var _ = Describe("Engine", func() {
	var (
		ctx         context.Context
		events      *mockEventStore
		testnets    *mockTestnetStore
		discoveries *mockDiscoveryStore
		snapshots   *mockSnapshotStore
		persisted   []*model.InsightSnapshot
	)

	newEngine := func() *insights.Engine {
		return insights.NewEngine(events, testnets, discoveries, snapshots, nil, insights.Config{})
	}

	BeforeEach(func() {
		ctx = context.Background()
		events = &mockEventStore{}
		testnets = &mockTestnetStore{}
		discoveries = &mockDiscoveryStore{}
		persisted = nil
		snapshots = &mockSnapshotStore{
			createFn: func(_ context.Context, s *model.InsightSnapshot) error {
				persisted = append(persisted, s)
				return nil
			},
		}

		Expect(id.Init(1)).To(Succeed())
	})

	Describe("Compute", func() {
		Context("with join events for a tagged entity", func() {
			It("derives the top category from the tag and ranks popular joins", func() {
				testnets.listAllFn = func(_ context.Context) ([]model.Testnet, error) {
					return []model.Testnet{
						{Slug: "fuel-beta", Name: "Fuel Beta", Tags: []string{"zk-testing"}},
					}, nil
				}
				events.listFn = func(_ context.Context, _ []string, _ time.Time) ([]model.InteractionEvent, error) {
					return []model.InteractionEvent{
						joinEvent("fuel-beta", "s1"),
						joinEvent("fuel-beta", "s2"),
					}, nil
				}

				snapshot, err := newEngine().Compute(ctx)

				Expect(err).NotTo(HaveOccurred())
				Expect(snapshot.TopCategory).To(HaveValue(Equal("ZK")))
				Expect(snapshot.ForYou).To(ContainElement(model.Recommendation{
					Slug:   "fuel-beta",
					Name:   "Fuel Beta",
					Reason: "Popular with 2 recent joins",
				}))
				Expect(persisted).To(HaveLen(1))
			})
		})

		Context("co-occurrence", func() {
			catalog := func() []model.Testnet {
				return []model.Testnet{
					{Slug: "a", Name: "Alpha"},
					{Slug: "b", Name: "Bravo"},
					{Slug: "c", Name: "Charlie"},
				}
			}

			It("expands one co-visit into both directed pairs", func() {
				testnets.listAllFn = func(_ context.Context) ([]model.Testnet, error) { return catalog(), nil }
				events.listFn = func(_ context.Context, _ []string, _ time.Time) ([]model.InteractionEvent, error) {
					return []model.InteractionEvent{
						readEvent("a", "s1"),
						readEvent("b", "s1"),
					}, nil
				}

				snapshot, err := newEngine().Compute(ctx)

				Expect(err).NotTo(HaveOccurred())
				Expect(snapshot.UserCorrelation).To(ConsistOf(
					model.CorrelationEntry{Source: "a", Related: []string{"Bravo"}},
					model.CorrelationEntry{Source: "b", Related: []string{"Alpha"}},
				))
			})

			It("produces no pairs for a single-entity session", func() {
				testnets.listAllFn = func(_ context.Context) ([]model.Testnet, error) { return catalog(), nil }
				events.listFn = func(_ context.Context, _ []string, _ time.Time) ([]model.InteractionEvent, error) {
					return []model.InteractionEvent{readEvent("a", "s1")}, nil
				}

				snapshot, err := newEngine().Compute(ctx)

				Expect(err).NotTo(HaveOccurred())
				Expect(snapshot.UserCorrelation).To(BeEmpty())
			})

			It("merges related entities across sessions for a shared source", func() {
				testnets.listAllFn = func(_ context.Context) ([]model.Testnet, error) { return catalog(), nil }
				events.listFn = func(_ context.Context, _ []string, _ time.Time) ([]model.InteractionEvent, error) {
					return []model.InteractionEvent{
						readEvent("a", "s1"),
						readEvent("b", "s1"),
						readEvent("a", "s2"),
						readEvent("c", "s2"),
					}, nil
				}

				snapshot, err := newEngine().Compute(ctx)

				Expect(err).NotTo(HaveOccurred())

				var entry *model.CorrelationEntry
				for i := range snapshot.UserCorrelation {
					if snapshot.UserCorrelation[i].Source == "a" {
						entry = &snapshot.UserCorrelation[i]
					}
				}
				Expect(entry).NotTo(BeNil())
				Expect(entry.Related).To(ConsistOf("Bravo", "Charlie"))
			})

			It("counts sessionless events in tallies but not in pairs", func() {
				testnets.listAllFn = func(_ context.Context) ([]model.Testnet, error) { return catalog(), nil }
				events.listFn = func(_ context.Context, _ []string, _ time.Time) ([]model.InteractionEvent, error) {
					return []model.InteractionEvent{
						joinEvent("a", ""),
						joinEvent("b", ""),
					}, nil
				}

				snapshot, err := newEngine().Compute(ctx)

				Expect(err).NotTo(HaveOccurred())
				Expect(snapshot.UserCorrelation).To(BeEmpty())
				Expect(snapshot.ForYou).To(HaveLen(2))
			})
		})

		Context("when events reference unknown or missing slugs", func() {
			It("silently drops them", func() {
				testnets.listAllFn = func(_ context.Context) ([]model.Testnet, error) {
					return []model.Testnet{{Slug: "a", Name: "Alpha"}}, nil
				}
				events.listFn = func(_ context.Context, _ []string, _ time.Time) ([]model.InteractionEvent, error) {
					return []model.InteractionEvent{
						joinEvent("ghost", "s1"),
						{EventName: model.EventJoin, Payload: map[string]any{"noise": true}},
						joinEvent("a", "s1"),
					}, nil
				}

				snapshot, err := newEngine().Compute(ctx)

				Expect(err).NotTo(HaveOccurred())
				Expect(snapshot.ForYou).To(HaveLen(1))
				Expect(snapshot.ForYou[0].Slug).To(Equal("a"))
				Expect(snapshot.ForYou[0].Reason).To(Equal("Popular with 1 recent joins"))
			})
		})

		Context("with no qualifying joins", func() {
			It("falls back to recent discoveries for recommendations", func() {
				testnets.listAllFn = func(_ context.Context) ([]model.Testnet, error) { return nil, nil }
				discoveries.listRecentFn = func(_ context.Context, _ int32) ([]model.DiscoveryRecord, error) {
					return []model.DiscoveryRecord{
						{Name: "Lyra Testnet", Slug: "lyra-testnet"},
						{Name: "Vega Devnet", Slug: "vega-devnet"},
					}, nil
				}

				snapshot, err := newEngine().Compute(ctx)

				Expect(err).NotTo(HaveOccurred())
				Expect(snapshot.TopCategory).To(BeNil())
				Expect(snapshot.ForYou).To(HaveLen(2))
				Expect(snapshot.ForYou[0].Reason).To(Equal("Newly surfaced by AI discovery"))
				Expect(snapshot.EmergingProjects).To(HaveLen(2))
				Expect(snapshot.EmergingProjects[0].Slug).To(Equal("lyra-testnet"))
			})
		})

		Context("when the catalog fetch fails", func() {
			It("aborts without persisting anything", func() {
				testnets.listAllFn = func(_ context.Context) ([]model.Testnet, error) {
					return nil, errors.New("connection refused")
				}

				snapshot, err := newEngine().Compute(ctx)

				Expect(err).To(MatchError(insights.ErrCatalogUnavailable))
				Expect(snapshot).To(BeNil())
				Expect(persisted).To(BeEmpty())
			})
		})

		Context("when the event fetch fails", func() {
			It("degrades to an empty window instead of aborting", func() {
				testnets.listAllFn = func(_ context.Context) ([]model.Testnet, error) { return nil, nil }
				events.listFn = func(_ context.Context, _ []string, _ time.Time) ([]model.InteractionEvent, error) {
					return nil, errors.New("timeout")
				}

				snapshot, err := newEngine().Compute(ctx)

				Expect(err).NotTo(HaveOccurred())
				Expect(snapshot).NotTo(BeNil())
				Expect(persisted).To(HaveLen(1))
			})
		})

		It("creates a new distinct snapshot on every run", func() {
			testnets.listAllFn = func(_ context.Context) ([]model.Testnet, error) { return nil, nil }

			engine := newEngine()
			first, err := engine.Compute(ctx)
			Expect(err).NotTo(HaveOccurred())
			second, err := engine.Compute(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(second.ID).NotTo(Equal(first.ID))
			Expect(second.CreatedAt).To(BeTemporally(">=", first.CreatedAt))
			Expect(persisted).To(HaveLen(2))
		})
	})

	Describe("Latest", func() {
		It("returns the stored snapshot without recomputing", func() {
			stored := &model.InsightSnapshot{ID: 42, CreatedAt: time.Now()}
			snapshots.latestFn = func(_ context.Context) (*model.InsightSnapshot, error) {
				return stored, nil
			}

			snapshot, err := newEngine().Latest(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(snapshot).To(Equal(stored))
			Expect(persisted).To(BeEmpty())
		})

		It("computes a snapshot only when the store is empty", func() {
			snapshots.latestFn = func(_ context.Context) (*model.InsightSnapshot, error) {
				return nil, store.ErrNotFound
			}
			testnets.listAllFn = func(_ context.Context) ([]model.Testnet, error) { return nil, nil }

			snapshot, err := newEngine().Latest(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(snapshot).NotTo(BeNil())
			Expect(persisted).To(HaveLen(1))
		})

		It("propagates store failures", func() {
			snapshots.latestFn = func(_ context.Context) (*model.InsightSnapshot, error) {
				return nil, errors.New("disk on fire")
			}

			_, err := newEngine().Latest(ctx)

			Expect(err).To(HaveOccurred())
			Expect(persisted).To(BeEmpty())
		})
	})
})
