// Package observability lets applications watch the card pipeline.
//
// The pipeline and the cached rasterizer report events through hook
// interfaces with no-op defaults, so library code carries no dependency on a
// metrics backend. [LogHooks] turns the events into debug log lines; the CLI
// installs it for --verbose runs:
//
//	h := observability.NewLogHooks(logger)
//	observability.SetPipelineHooks(h)
//	observability.SetCacheHooks(h)
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnRasterStart(ctx, cardID)
//	// ... rasterize ...
//	observability.Pipeline().OnRasterComplete(ctx, cardID, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the generate and print pipelines.
type PipelineHooks interface {
	// Layout events, one pair per card.
	OnLayoutStart(ctx context.Context, cardID string)
	OnLayoutComplete(ctx context.Context, cardID string, warnings int, duration time.Duration, err error)

	// Raster events, one pair per distinct card in a print job.
	OnRasterStart(ctx context.Context, cardID string)
	OnRasterComplete(ctx context.Context, cardID string, duration time.Duration, err error)

	// OnPackComplete is called once the sheet packer has paginated a job.
	OnPackComplete(ctx context.Context, cards, pages int, duration time.Duration)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives cache lookups and writes. keyType names the kind of
// entry ("raster"); size is the stored payload in bytes.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks discards every event.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLayoutStart(context.Context, string) {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnRasterStart(context.Context, string)                          {}
func (NoopPipelineHooks) OnRasterComplete(context.Context, string, time.Duration, error) {}
func (NoopPipelineHooks) OnPackComplete(context.Context, int, int, time.Duration)        {}

// NoopCacheHooks discards every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

// registry holds the active hooks. Reads vastly outnumber writes, which
// happen once at startup.
type registry struct {
	mu       sync.RWMutex
	pipeline PipelineHooks
	cache    CacheHooks
}

var hooks = &registry{pipeline: NoopPipelineHooks{}, cache: NoopCacheHooks{}}

// SetPipelineHooks registers pipeline hooks. Call it once at startup; a nil
// value is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h == nil {
		return
	}
	hooks.mu.Lock()
	hooks.pipeline = h
	hooks.mu.Unlock()
}

// SetCacheHooks registers cache hooks. A nil value is ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	hooks.mu.Lock()
	hooks.cache = h
	hooks.mu.Unlock()
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.pipeline
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.cache
}

// Reset restores the no-op hooks. Tests use it between cases.
func Reset() {
	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	hooks.pipeline = NoopPipelineHooks{}
	hooks.cache = NoopCacheHooks{}
}
