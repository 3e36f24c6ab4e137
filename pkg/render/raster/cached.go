package raster

import (
	"context"
	"image"
	"time"

	"github.com/matzehuels/cardpress/pkg/cache"
	"github.com/matzehuels/cardpress/pkg/observability"
)

// DefaultTTL is how long rasterized cards stay cached.
const DefaultTTL = 30 * 24 * time.Hour

const keyType = "raster"

// Cached is a cache-aside wrapper around another rasterizer. Entries are PNG
// bytes keyed by the SVG content, the requested size, and the backend name.
// Cache errors are never fatal; they degrade to a miss.
type Cached struct {
	inner   Rasterizer
	cache   cache.Cache
	keyer   cache.Keyer
	backend Backend
	ttl     time.Duration
}

// NewCached wraps inner. A nil cache disables caching, a nil keyer uses
// cache.NewDefaultKeyer, and a zero ttl uses DefaultTTL.
func NewCached(inner Rasterizer, c cache.Cache, keyer cache.Keyer, backend Backend, ttl time.Duration) *Cached {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Cached{inner: inner, cache: c, keyer: keyer, backend: backend, ttl: ttl}
}

func (c *Cached) Rasterize(ctx context.Context, svg []byte, w, h, dpi int) (image.Image, error) {
	hooks := observability.Cache()
	key := c.keyer.RasterKey(svg, cache.RasterKeyOpts{Backend: string(c.backend), Width: w, Height: h, DPI: dpi})

	if data, hit, err := c.cache.Get(ctx, key); err == nil && hit {
		if img, err := decodeExact(data, w, h); err == nil {
			hooks.OnCacheHit(ctx, keyType)
			return img, nil
		}
		// Corrupt entry: fall through and overwrite it.
	}
	hooks.OnCacheMiss(ctx, keyType)

	img, err := c.inner.Rasterize(ctx, svg, w, h, dpi)
	if err != nil {
		return nil, err
	}

	if data, err := EncodePNG(img); err == nil {
		if err := c.cache.Set(ctx, key, data, c.ttl); err == nil {
			hooks.OnCacheSet(ctx, keyType, len(data))
		}
	}
	return img, nil
}
