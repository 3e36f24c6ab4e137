// Package cache stores rasterized card images between runs.
//
// Rasterizing an SVG through an external tool is the slowest step of a print
// run, and the same card is usually printed many times across runs. The
// [Cache] interface is a small byte store with TTLs; [FileCache] keeps
// entries on disk for the CLI, [RedisCache] shares them between service
// instances, and [NullCache] disables caching.
//
// Keys come from a [Keyer] so that every component derives them the same way:
//
//	k := cache.NewDefaultKeyer()
//	key := k.RasterKey(svg, cache.RasterKeyOpts{Width: 744, Height: 1039, DPI: 300})
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry. Implementations must be safe
// for concurrent use.
type Cache interface {
	// Get returns the entry for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop all entries at once.
type Clearer interface {
	Clear(ctx context.Context) error
}

// RasterKeyOpts are the rasterization parameters that change the output.
type RasterKeyOpts struct {
	Backend string `json:"backend"`
	Width   int    `json:"w"`
	Height  int    `json:"h"`
	DPI     int    `json:"dpi"`
}

// Keyer derives cache keys.
type Keyer interface {
	RasterKey(svg []byte, opts RasterKeyOpts) string
}

// DefaultKeyer hashes the full input into every key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// RasterKey returns "raster:<sha256>" over the SVG hash and options.
func (DefaultKeyer) RasterKey(svg []byte, opts RasterKeyOpts) string {
	return hashKey("raster", Hash(svg), opts)
}

// ScopedKeyer prefixes every key of an inner keyer, for sharing one store
// between deployments.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner (the default keyer when nil) with prefix.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) RasterKey(svg []byte, opts RasterKeyOpts) string {
	return k.prefix + k.inner.RasterKey(svg, opts)
}
