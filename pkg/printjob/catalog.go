package printjob

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/matzehuels/cardpress/pkg/card"
	"github.com/matzehuels/cardpress/pkg/errors"
)

// Catalog maps card identifiers to SVG documents. Lookup is
// case-insensitive and returns the catalog's own key for the card.
type Catalog interface {
	Lookup(id string) (key string, ok bool)
	SVG(ctx context.Context, key string) ([]byte, error)
}

// SVGDir is a catalog of pre-rendered .svg files, keyed by lower-cased file
// stem.
type SVGDir struct {
	dir   string
	index map[string]string
}

// NewSVGDir indexes the .svg files directly inside dir.
func NewSVGDir(dir string) (*SVGDir, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "card directory %s", dir)
	}
	c := &SVGDir{dir: dir, index: make(map[string]string)}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.EqualFold(filepath.Ext(name), ".svg") {
			continue
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		c.index[strings.ToLower(stem)] = filepath.Join(dir, name)
	}
	return c, nil
}

func (c *SVGDir) Lookup(id string) (string, bool) {
	key := strings.ToLower(id)
	_, ok := c.index[key]
	return key, ok
}

func (c *SVGDir) SVG(_ context.Context, key string) ([]byte, error) {
	path, ok := c.index[key]
	if !ok {
		return nil, errors.New(errors.ErrCodeCardNotFound, "card SVG '%s.svg' not found in %s", key, c.dir)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
	}
	return data, nil
}

// Keys returns the indexed keys, sorted.
func (c *SVGDir) Keys() []string { return sortedKeys(c.index) }

func (c *SVGDir) String() string { return c.dir }

// RenderFunc renders one card definition to SVG.
type RenderFunc func(card.Card) ([]byte, error)

// Defs is a catalog over card definitions. Cards are keyed by their
// lower-cased slug, so both "Ember Drake" and "ember_drake" find the same
// card. SVGs are rendered on first use and kept. When two definitions share
// a slug the later one wins, matching the file that generate would leave on
// disk.
type Defs struct {
	render RenderFunc
	cards  map[string]card.Card

	mu   sync.Mutex
	svgs map[string][]byte
}

// NewDefs indexes cards and renders them with render on demand.
func NewDefs(cards []card.Card, render RenderFunc) *Defs {
	d := &Defs{
		render: render,
		cards:  make(map[string]card.Card, len(cards)),
		svgs:   make(map[string][]byte),
	}
	for _, c := range cards {
		d.cards[c.WithDefaults().ID()] = c
	}
	return d
}

func (d *Defs) Lookup(id string) (string, bool) {
	key := strings.ToLower(id)
	if _, ok := d.cards[key]; ok {
		return key, true
	}
	key = strings.ToLower(card.Slug(id))
	_, ok := d.cards[key]
	return key, ok
}

func (d *Defs) SVG(_ context.Context, key string) ([]byte, error) {
	c, ok := d.cards[key]
	if !ok {
		return nil, errors.New(errors.ErrCodeCardNotFound, "card %q not found in definitions", key)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if svg, ok := d.svgs[key]; ok {
		return svg, nil
	}
	svg, err := d.render(c)
	if err != nil {
		return nil, err
	}
	d.svgs[key] = svg
	return svg, nil
}

// Keys returns the indexed keys, sorted.
func (d *Defs) Keys() []string { return sortedKeys(d.cards) }

// Map is an in-memory catalog. Keys must already be lower-case.
type Map map[string][]byte

func (m Map) Lookup(id string) (string, bool) {
	key := strings.ToLower(id)
	_, ok := m[key]
	return key, ok
}

func (m Map) SVG(_ context.Context, key string) ([]byte, error) {
	svg, ok := m[key]
	if !ok {
		return nil, errors.New(errors.ErrCodeCardNotFound, "card %q not found", key)
	}
	return svg, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
