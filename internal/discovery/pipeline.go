// Package discovery ingests external candidate records, deduplicates and
// classifies them, and promotes qualifying ones into the tracked catalog's
// discovery log. One run is a single synchronous batch pass.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"testnetdir.app/pulse/common"
	"testnetdir.app/pulse/common/id"
	"testnetdir.app/pulse/common/logger"
	"testnetdir.app/pulse/internal/discovery/provider"
	"testnetdir.app/pulse/internal/model"
	"testnetdir.app/pulse/internal/store"
)

// Provider-sourced candidates must look like a test network to qualify.
// Fallback candidates are pre-vetted and bypass this.
var relevancePattern = regexp.MustCompile(`(?i)testnet|devnet|beta`)

type Config struct {
	// MaxPerRun caps how many qualifying candidates one run processes.
	// There is no resume cursor; the next run starts over from the
	// providers' current output. Defaults to 30.
	MaxPerRun int

	// ProviderTimeout bounds each provider fetch. Defaults to 15s.
	ProviderTimeout time.Duration

	// Rules is the ordered classification table. Defaults to
	// DefaultCategoryRules.
	Rules []CategoryRule

	// Fallback is the pre-vetted candidate list used when all providers
	// return empty. Defaults to DefaultFallbackCandidates.
	Fallback []model.DiscoveryCandidate
}

type RunResult struct {
	Added int
	Items []model.DiscoveryRecord
}

type Pipeline struct {
	providers   []provider.Provider
	testnets    store.TestnetStore
	discoveries store.DiscoveryStore
	cfg         Config
}

func NewPipeline(providers []provider.Provider, testnets store.TestnetStore, discoveries store.DiscoveryStore, cfg Config) *Pipeline {
	if cfg.MaxPerRun <= 0 {
		cfg.MaxPerRun = 30
	}
	if cfg.ProviderTimeout <= 0 {
		cfg.ProviderTimeout = 15 * time.Second
	}
	if cfg.Rules == nil {
		cfg.Rules = DefaultCategoryRules()
	}
	if cfg.Fallback == nil {
		cfg.Fallback = DefaultFallbackCandidates()
	}
	return &Pipeline{
		providers:   providers,
		testnets:    testnets,
		discoveries: discoveries,
		cfg:         cfg,
	}
}

// Run executes one discovery pass: fetch candidates from every provider,
// filter and dedup against the shared slug namespace, classify, summarize,
// and persist the survivors. Returns the newly inserted records.
func (p *Pipeline) Run(ctx context.Context) (*RunResult, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "pulse.discovery.pipeline"})

	candidates, fromFallback := p.collect(ctx)

	existing, err := p.loadExistingSlugs(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading existing slugs: %w", err)
	}

	qualified := candidates
	if !fromFallback {
		qualified = make([]model.DiscoveryCandidate, 0, len(candidates))
		for _, c := range candidates {
			if relevancePattern.MatchString(c.Description) {
				qualified = append(qualified, c)
			}
		}
	}
	if len(qualified) > p.cfg.MaxPerRun {
		qualified = qualified[:p.cfg.MaxPerRun]
	}

	result := &RunResult{}
	for _, candidate := range qualified {
		slug := common.Slugify(candidate.Name)
		if slug == "" || existing[slug] {
			continue
		}

		record := &model.DiscoveryRecord{
			ID:        id.New(),
			Name:      candidate.Name,
			Slug:      slug,
			Network:   optional(candidate.Network),
			Category:  classify(p.cfg.Rules, candidate.Description, candidate.Network),
			Summary:   summarize(candidate.Description),
			SourceURL: optional(firstNonEmpty(candidate.SourceURL, candidate.Website)),
			Metadata: map[string]any{
				"website":     candidate.Website,
				"description": candidate.Description,
			},
			CreatedAt: time.Now().UTC(),
		}

		if err := p.discoveries.Create(ctx, record); err != nil {
			if errors.Is(err, store.ErrDuplicateSlug) {
				// Lost a race with a concurrent run; the constraint already
				// guarantees a single record, so skip quietly.
				existing[slug] = true
				continue
			}
			// One bad write must not abort the remaining candidates.
			slog.WarnContext(ctx, "discovery record insert failed", "slug", slug, "error", err)
			continue
		}

		// Later candidates in this run must not collide with the new slug,
		// even before other callers can see the write.
		existing[slug] = true
		result.Added++
		result.Items = append(result.Items, *record)
	}

	slog.InfoContext(ctx, "discovery run finished",
		"candidates", len(candidates),
		"qualified", len(qualified),
		"added", result.Added,
		"from_fallback", fromFallback)
	return result, nil
}

// Latest returns the most recent discovery records, newest first.
func (p *Pipeline) Latest(ctx context.Context, limit int32) ([]model.DiscoveryRecord, error) {
	return p.discoveries.ListRecent(ctx, limit)
}

// collect fans out to every provider concurrently. Provider failures are
// caught at this boundary and reduce to zero candidates. Results concatenate
// in provider registration order; when everything is empty the fallback list
// substitutes.
func (p *Pipeline) collect(ctx context.Context) ([]model.DiscoveryCandidate, bool) {
	results := make([][]model.DiscoveryCandidate, len(p.providers))

	var wg sync.WaitGroup
	for i, prov := range p.providers {
		wg.Add(1)
		go func(i int, prov provider.Provider) {
			defer wg.Done()
			pctx, cancel := context.WithTimeout(ctx, p.cfg.ProviderTimeout)
			defer cancel()
			pctx = logger.WithLogFields(pctx, logger.LogFields{Provider: logger.Ptr(prov.Name())})

			list, err := prov.Fetch(pctx)
			if err != nil {
				// A timed-out provider is treated identically to a failed one.
				slog.WarnContext(pctx, "provider fetch failed", "error", err)
				return
			}
			slog.DebugContext(pctx, "provider fetch complete", "candidates", len(list))
			results[i] = list
		}(i, prov)
	}
	wg.Wait()

	var combined []model.DiscoveryCandidate
	for _, list := range results {
		combined = append(combined, list...)
	}
	if len(combined) > 0 {
		return combined, false
	}
	return append([]model.DiscoveryCandidate(nil), p.cfg.Fallback...), true
}

// loadExistingSlugs builds the dedup set as the union of catalog slugs and
// discovery record slugs: one shared namespace.
func (p *Pipeline) loadExistingSlugs(ctx context.Context) (map[string]bool, error) {
	var (
		testnets []model.Testnet
		slugs    []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := p.testnets.ListAll(gctx)
		if err != nil {
			return fmt.Errorf("fetching catalog: %w", err)
		}
		testnets = list
		return nil
	})
	g.Go(func() error {
		list, err := p.discoveries.ListSlugs(gctx)
		if err != nil {
			return fmt.Errorf("fetching discovery slugs: %w", err)
		}
		slugs = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	existing := make(map[string]bool, len(testnets)+len(slugs))
	for _, t := range testnets {
		existing[t.Slug] = true
	}
	for _, s := range slugs {
		existing[s] = true
	}
	return existing, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
