package theme

import (
	"slices"
	"strings"
	"sync"

	"github.com/matzehuels/cardpress/pkg/errors"
)

// DefaultName is the theme used when a card names none.
const DefaultName = "classic"

// Registry holds named base themes. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	themes map[string]Theme
}

// NewRegistry returns a registry containing the built-in themes.
func NewRegistry() *Registry {
	return &Registry{themes: map[string]Theme{
		"classic": Default(),
		"ink":     Ink(),
	}}
}

// Register adds a named theme built from a base theme and overrides.
// An empty base means the default theme. Registering an existing name
// replaces it.
func (r *Registry) Register(name, base string, o Overrides) ([]string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, errors.New(errors.ErrCodeInvalidTheme, "theme name cannot be empty")
	}
	b, err := r.Lookup(base)
	if err != nil {
		return nil, err
	}
	t, unknown, err := b.Merge(o)
	if err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return unknown, errors.Wrap(errors.ErrCodeInvalidTheme, err, "theme %q", name)
	}
	t.Name = name

	r.mu.Lock()
	r.themes[name] = t
	r.mu.Unlock()
	return unknown, nil
}

// Lookup returns the named theme. Names are case-insensitive and an empty
// name selects the default.
func (r *Registry) Lookup(name string) (Theme, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultName
	}
	r.mu.RLock()
	t, ok := r.themes[name]
	r.mu.RUnlock()
	if !ok {
		return Theme{}, errors.New(errors.ErrCodeInvalidTheme, "unknown theme %q", name)
	}
	return t, nil
}

// Names returns the registered theme names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.themes))
	for n := range r.themes {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
