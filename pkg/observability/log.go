package observability

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements PipelineHooks and CacheHooks by writing debug lines to
// a logger. It also counts cache hits and misses for a run summary.
type LogHooks struct {
	logger *log.Logger

	hits, misses atomic.Int64
}

// NewLogHooks returns hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnLayoutStart(context.Context, string) {}

func (h *LogHooks) OnLayoutComplete(_ context.Context, cardID string, warnings int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("layout failed", "card", cardID, "duration", d, "err", err)
		return
	}
	h.logger.Debug("layout", "card", cardID, "warnings", warnings, "duration", d)
}

func (h *LogHooks) OnRasterStart(_ context.Context, cardID string) {
	h.logger.Debug("rasterize", "card", cardID)
}

func (h *LogHooks) OnRasterComplete(_ context.Context, cardID string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("rasterize failed", "card", cardID, "duration", d, "err", err)
		return
	}
	h.logger.Debug("rasterized", "card", cardID, "duration", d)
}

func (h *LogHooks) OnPackComplete(_ context.Context, cards, pages int, d time.Duration) {
	h.logger.Debug("packed", "cards", cards, "pages", pages, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.hits.Add(1)
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.misses.Add(1)
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

// CacheStats returns the hits and misses seen so far.
func (h *LogHooks) CacheStats() (hits, misses int64) {
	return h.hits.Load(), h.misses.Load()
}
