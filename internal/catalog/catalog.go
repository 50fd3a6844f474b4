// Package catalog defines which WFS source layers feed each offline category.
package catalog

import "github.com/rotisserie/eris"

// Descriptor identifies one remote WFS source layer.
type Descriptor struct {
	// Endpoint is the WFS service base URL.
	Endpoint string `json:"endpoint" mapstructure:"endpoint"`
	// TypeName is the qualified WFS layer name (e.g. "DERA_g12_servicios:g12_01_CentroSalud").
	TypeName string `json:"type_name" mapstructure:"type_name"`
	// Label is the human-readable provenance label stamped onto each feature.
	Label string `json:"label" mapstructure:"label"`
	// CQLFilter optionally restricts the layer server-side.
	CQLFilter string `json:"cql_filter,omitempty" mapstructure:"cql_filter"`
}

// Category groups one or more source layers into a single offline file.
type Category struct {
	// Key is the category identifier and output file stem (e.g. "health").
	Key string `json:"key" mapstructure:"key"`
	// Name is the human-readable category name.
	Name string `json:"name" mapstructure:"name"`
	// Layers are fetched in order; order only affects feature sequence.
	Layers []Descriptor `json:"layers" mapstructure:"layers"`
}

// Catalog is an ordered, key-addressable set of categories.
type Catalog struct {
	categories []Category
	byKey      map[string]int
}

// New builds a catalog preserving the given category order.
func New(categories ...Category) *Catalog {
	c := &Catalog{byKey: make(map[string]int, len(categories))}
	for _, cat := range categories {
		c.byKey[cat.Key] = len(c.categories)
		c.categories = append(c.categories, cat)
	}
	return c
}

// Get returns the category for the given key.
func (c *Catalog) Get(key string) (Category, error) {
	i, ok := c.byKey[key]
	if !ok {
		return Category{}, eris.Errorf("catalog: unknown category %q (valid: %v)", key, c.Keys())
	}
	return c.categories[i], nil
}

// All returns every category in catalog order.
func (c *Catalog) All() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Keys returns the category keys in catalog order.
func (c *Catalog) Keys() []string {
	out := make([]string, len(c.categories))
	for i, cat := range c.categories {
		out[i] = cat.Key
	}
	return out
}

// Len returns the number of categories.
func (c *Catalog) Len() int { return len(c.categories) }
