// Package browse implements the storefront's product browsing pipeline:
// stateless filter, sort and pagination engines composed by the query layer.
package browse

import "github.com/example/furnishop/internal/catalog"

// PriceRange bounds are inclusive and in the catalog's price units. A nil
// side leaves that side unbounded.
type PriceRange struct {
	Min *int64 `json:"min"`
	Max *int64 `json:"max"`
}

// Criteria is the user-selected filter state. Values within one dimension
// are OR-ed, dimensions are AND-ed, and an empty dimension imposes no
// constraint.
type Criteria struct {
	Categories []string    `json:"categories,omitempty"`
	Colors     []string    `json:"colors,omitempty"`
	Materials  []string    `json:"materials,omitempty"`
	PriceRange *PriceRange `json:"price_range,omitempty"`
}

// IsEmpty reports whether the criteria impose no constraint at all
func (c Criteria) IsEmpty() bool {
	return len(c.Categories) == 0 && len(c.Colors) == 0 && len(c.Materials) == 0 && c.PriceRange == nil
}

// Matches reports whether a single product satisfies every non-empty dimension
func (c Criteria) Matches(p catalog.Product) bool {
	if len(c.Categories) > 0 && !contains(c.Categories, p.Category) {
		return false
	}
	if len(c.Colors) > 0 && !contains(c.Colors, p.Color) {
		return false
	}
	if len(c.Materials) > 0 && !contains(c.Materials, p.Material) {
		return false
	}
	if c.PriceRange != nil {
		if c.PriceRange.Min != nil && p.Price < *c.PriceRange.Min {
			return false
		}
		if c.PriceRange.Max != nil && p.Price > *c.PriceRange.Max {
			return false
		}
	}
	return true
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
