// Package art resolves card art references into embeddable image URIs.
//
// The layout engine only sees the [Resolver] interface. [Files] reads art
// from disk and encodes it as a base64 data URI so that the generated SVG is
// self-contained and can be rasterized without access to the art directory.
package art

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/cardpress/pkg/errors"
)

// Resolver turns an art reference into an href usable in an SVG <image>.
// Failures carry ART_NOT_FOUND.
type Resolver interface {
	Resolve(ref string) (string, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ref string) (string, error)

func (f ResolverFunc) Resolve(ref string) (string, error) { return f(ref) }

// Files resolves references as file paths. Relative paths are joined to
// Root when it is set.
type Files struct {
	Root string
}

// Resolve reads the referenced file and returns it as a data URI.
func (f Files) Resolve(ref string) (string, error) {
	if err := errors.ValidatePath(ref); err != nil {
		return "", errors.Wrap(errors.ErrCodeArtNotFound, err, "art %q", ref)
	}
	path := f.path(ref)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeArtNotFound, err, "art %q", ref)
	}
	return DataURI(data, MimeType(path)), nil
}

func (f Files) path(ref string) string {
	if f.Root != "" && !filepath.IsAbs(ref) {
		return filepath.Join(f.Root, ref)
	}
	return ref
}

// MimeType guesses the image type from the file extension. JPEG and SVG are
// recognised; everything else is treated as PNG.
func MimeType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".svg":
		return "image/svg+xml"
	default:
		return "image/png"
	}
}

// DataURI encodes data as a base64 data URI.
func DataURI(data []byte, mime string) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Memo wraps a resolver so that each reference is resolved at most once.
// Errors are not remembered. The result is safe for concurrent use.
func Memo(r Resolver) Resolver {
	return &memo{next: r}
}

type memo struct {
	next Resolver
	hits sync.Map
}

func (m *memo) Resolve(ref string) (string, error) {
	if v, ok := m.hits.Load(ref); ok {
		return v.(string), nil
	}
	uri, err := m.next.Resolve(ref)
	if err != nil {
		return "", err
	}
	m.hits.Store(ref, uri)
	return uri, nil
}

// Cached resolves through Files and keeps at most limit data URIs. An entry
// is reused only while the file's size and modification time are unchanged;
// when full, the least recently used entry is evicted. Safe for concurrent use.
type Cached struct {
	files Files
	limit int

	mu      sync.Mutex
	clock   uint64
	entries map[string]*cachedArt
}

type cachedArt struct {
	uri  string
	mod  time.Time
	size int64
	used uint64
}

// NewCached returns a cache over f. A limit below 1 is treated as 1.
func NewCached(f Files, limit int) *Cached {
	return &Cached{files: f, limit: max(limit, 1), entries: make(map[string]*cachedArt)}
}

// Resolve returns the cached data URI for ref, re-reading the file when it
// has changed on disk.
func (c *Cached) Resolve(ref string) (string, error) {
	if err := errors.ValidatePath(ref); err != nil {
		return "", errors.Wrap(errors.ErrCodeArtNotFound, err, "art %q", ref)
	}
	path := c.files.path(ref)
	info, err := os.Stat(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeArtNotFound, err, "art %q", ref)
	}

	c.mu.Lock()
	if e, ok := c.entries[path]; ok && e.size == info.Size() && e.mod.Equal(info.ModTime()) {
		c.clock++
		e.used = c.clock
		c.mu.Unlock()
		return e.uri, nil
	}
	c.mu.Unlock()

	uri, err := c.files.Resolve(ref)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[path]; !ok && len(c.entries) >= c.limit {
		c.evict()
	}
	c.clock++
	c.entries[path] = &cachedArt{uri: uri, mod: info.ModTime(), size: info.Size(), used: c.clock}
	return uri, nil
}

// Len returns the number of cached entries.
func (c *Cached) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cached) evict() {
	var (
		oldest string
		lowest uint64
	)
	for path, e := range c.entries {
		if oldest == "" || e.used < lowest {
			oldest, lowest = path, e.used
		}
	}
	delete(c.entries, oldest)
}
