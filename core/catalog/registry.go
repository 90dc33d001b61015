package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidProductType is returned when a type is not registered.
var ErrInvalidProductType = errors.New("invalid product type")

// Registry holds the set of product types accepted at ingestion.
type Registry struct {
	types []ProductType
	index map[string]ProductType
}

// NewRegistry builds a registry from raw type names.
// Names are trimmed and lowercased, blanks and duplicates are dropped,
// and the bundle type is always present.
func NewRegistry(names []string) *Registry {
	r := &Registry{index: make(map[string]ProductType)}
	for _, n := range names {
		r.add(n)
	}
	r.add(string(TypeBundle))
	return r
}

func (r *Registry) add(name string) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return
	}
	if _, ok := r.index[key]; ok {
		return
	}
	t := ProductType(key)
	r.index[key] = t
	r.types = append(r.types, t)
}

// Parse validates a raw type name and returns its canonical form.
func (r *Registry) Parse(name string) (ProductType, error) {
	t, ok := r.index[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidProductType, name)
	}
	return t, nil
}

// Types returns every registered type in registration order.
func (r *Registry) Types() []ProductType {
	out := make([]ProductType, len(r.types))
	copy(out, r.types)
	return out
}

// ItemTypes returns the registered types that are not the bundle type.
func (r *Registry) ItemTypes() []ProductType {
	var out []ProductType
	for _, t := range r.types {
		if !t.IsBundle() {
			out = append(out, t)
		}
	}
	return out
}
