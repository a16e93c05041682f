package browse

import (
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/example/furnishop/internal/catalog"
)

// SortKey selects the product ordering
type SortKey string

const (
	SortDefault     SortKey = "default"
	SortPriceAsc    SortKey = "price_asc"
	SortPriceDesc   SortKey = "price_desc"
	SortNameAsc     SortKey = "name_asc"
	SortNameDesc    SortKey = "name_desc"
	SortNewestFirst SortKey = "newest"
)

// ParseSortKey maps a query-string value to a SortKey, defaulting to
// SortDefault for the empty string.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case "", SortDefault:
		return SortDefault, nil
	case SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc, SortNewestFirst:
		return SortKey(s), nil
	default:
		return SortDefault, fmt.Errorf("unknown sort key %q", s)
	}
}

// nameCollator compares product names the way the storefront displays them:
// English collation, case-insensitive. Collators are not safe for concurrent
// use, so Sort builds one per call.
func nameCollator() *collate.Collator {
	return collate.New(language.English, collate.IgnoreCase)
}

// Sort returns a new slice ordered by the given key. The sort is stable:
// products with equal keys keep their input order, which keeps pagination
// deterministic across identical requests. SortDefault returns the input
// order unchanged.
func Sort(products []catalog.Product, key SortKey) []catalog.Product {
	out := make([]catalog.Product, len(products))
	copy(out, products)

	switch key {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortNameAsc:
		c := nameCollator()
		sort.SliceStable(out, func(i, j int) bool { return c.CompareString(out[i].Name, out[j].Name) < 0 })
	case SortNameDesc:
		c := nameCollator()
		sort.SliceStable(out, func(i, j int) bool { return c.CompareString(out[i].Name, out[j].Name) > 0 })
	case SortNewestFirst:
		// Product IDs are monotonic, so descending ID stands in for recency.
		sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	}

	return out
}
