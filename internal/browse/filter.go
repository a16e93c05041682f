package browse

import "github.com/example/furnishop/internal/catalog"

// Filter returns the products matching the criteria, preserving input order.
// The input slice is never mutated and an empty result is a valid result.
func Filter(products []catalog.Product, criteria Criteria) []catalog.Product {
	if criteria.IsEmpty() {
		out := make([]catalog.Product, len(products))
		copy(out, products)
		return out
	}

	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if criteria.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}
