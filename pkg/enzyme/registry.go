package enzyme

import (
	"cmp"
	"slices"
	"strings"
	"sync"
)

// Registry holds the known enzymes.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]Enzyme
	aliases map[string]string // alias -> canonical name
}

// NewRegistry creates an empty enzyme registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:  make(map[string]Enzyme),
		aliases: make(map[string]string),
	}
}

// Register adds an enzyme and its aliases to the registry.
// If an enzyme with the same name already exists, it is replaced.
func (r *Registry) Register(e Enzyme) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := normalize(e.Name)
	r.byName[name] = e
	for _, alias := range e.Aliases {
		r.aliases[normalize(alias)] = name
	}
}

// RegisterAlias maps an alias to a canonical enzyme name.
func (r *Registry) RegisterAlias(alias, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[normalize(alias)] = normalize(name)
}

// Get retrieves an enzyme by canonical name.
func (r *Registry) Get(name string) (Enzyme, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byName[normalize(name)]
	return e, ok
}

// Resolve returns the enzyme for a name or alias. Lookups ignore case and
// surrounding whitespace.
func (r *Registry) Resolve(key string) (Enzyme, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key = normalize(key)
	if e, ok := r.byName[key]; ok {
		return e, true
	}
	if name, ok := r.aliases[key]; ok {
		if e, ok := r.byName[name]; ok {
			return e, true
		}
	}
	return Enzyme{}, false
}

// Enzymes returns all registered enzymes sorted by name.
func (r *Registry) Enzymes() []Enzyme {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Enzyme, 0, len(r.byName))
	for _, e := range r.byName {
		result = append(result, e)
	}
	slices.SortFunc(result, func(a, b Enzyme) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return result
}

// Names returns all canonical enzyme names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.byName))
	for name := range r.byName {
		result = append(result, name)
	}
	slices.Sort(result)
	return result
}

func normalize(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// DefaultRegistry is the global registry of built-in enzymes.
//
//nolint:gochecknoglobals // Global registry is intentional for preset registration
var DefaultRegistry = NewRegistry()
