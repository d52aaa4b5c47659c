package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/seatchart/pkg/cache"
	"github.com/matzehuels/seatchart/pkg/chart"
	"github.com/matzehuels/seatchart/pkg/errors"
	"github.com/matzehuels/seatchart/pkg/observability"
	"github.com/matzehuels/seatchart/pkg/roster"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so caching behaves the same everywhere.
//
// The Runner holds no results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute plans members and renders the requested formats. A strict
// capacity failure is returned as an error together with the partial
// result.
func (r *Runner) Execute(ctx context.Context, members []roster.Member, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(members); err != nil {
		return nil, err
	}

	result := &Result{Stats: Stats{Members: len(members)}}

	planStart := time.Now()
	doc, hit, err := r.PlanWithCacheInfo(ctx, members, opts)
	if doc == nil {
		return nil, err
	}
	result.Document = doc
	result.RosterHash, _ = cache.HashJSON(members)
	result.CacheInfo.PlanHit = hit
	result.Stats.PlanTime = time.Since(planStart)
	result.Stats.Rows = len(doc.Rows)
	result.Stats.Unplaced = len(doc.Unplaced)
	result.Stats.Placed = len(doc.Members())

	r.Logger.Info("planned chart",
		"members", len(members),
		"rows", result.Stats.Rows,
		"unplaced", result.Stats.Unplaced,
		"cached", hit,
		"duration", result.Stats.PlanTime)
	if err != nil {
		return result, err
	}

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, doc, opts.Formats)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// PlanWithCacheInfo plans members with caching and reports whether the
// placement came from the cache. Display hints from opts are applied to
// cached documents too.
func (r *Runner) PlanWithCacheInfo(ctx context.Context, members []roster.Member, opts Options) (*chart.Document, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(members); err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnPlanStart(ctx, opts.Layout, len(members))
	start := time.Now()

	rosterHash, err := cache.HashJSON(members)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "hash roster")
	}
	cacheKey := r.Keyer.ChartKey(rosterHash, opts.ChartKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if doc, err := chart.Unmarshal(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "chart")
				opts.applyDisplay(doc)
				hooks.OnPlanComplete(ctx, opts.Layout, len(doc.Members()), len(doc.Unplaced), time.Since(start), nil)
				return doc, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "chart")
	}

	doc, err := Plan(members, opts)
	placed, unplaced := 0, 0
	if doc != nil {
		placed, unplaced = len(doc.Members()), len(doc.Unplaced)
	}
	hooks.OnPlanComplete(ctx, opts.Layout, placed, unplaced, time.Since(start), err)
	if err != nil {
		return doc, false, err
	}

	if data, err := chart.Marshal(doc); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLChart); err != nil {
			r.Logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "chart", len(data))
		}
	}
	return doc, false, nil
}

// Plan is a convenience wrapper that calls PlanWithCacheInfo and discards the cache hit info.
func (r *Runner) Plan(ctx context.Context, members []roster.Member, opts Options) (*chart.Document, error) {
	doc, _, err := r.PlanWithCacheInfo(ctx, members, opts)
	return doc, err
}

// RenderWithCacheInfo renders doc with caching and reports whether every
// artifact came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc *chart.Document, formats []string) (map[string][]byte, bool, error) {
	if len(formats) == 0 {
		formats = DefaultFormats
	}
	if err := ValidateFormats(formats); err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, formats)
	start := time.Now()

	docData, err := chart.Marshal(doc)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize chart for cache key")
	}
	docHash := cache.Hash(docData)

	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		key := r.Keyer.ArtifactKey(docHash, cache.ArtifactKeyOpts{Format: format})
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			break
		}
		artifacts[format] = data
	}
	if len(artifacts) == len(formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		hooks.OnRenderComplete(ctx, formats, time.Since(start), nil)
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	rendered, err := Render(ctx, doc, formats)
	hooks.OnRenderComplete(ctx, formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(docHash, cache.ArtifactKeyOpts{Format: format})
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, doc *chart.Document, formats []string) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, doc, formats)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
