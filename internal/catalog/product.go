// Package catalog defines the immutable product record served by the
// storefront and the single normalization path for catalog prices.
package catalog

import "time"

// Product is one catalog entry. IDs are assigned by the catalog source and
// are monotonically increasing, which is what makes them usable as a recency
// proxy when sorting by newest. Prices are whole-rupee integers; the source
// formats amounts as "Rs. 1,299.00" but never carries a sub-rupee fraction,
// so "Rs. 1,299.00" and the number 1299 are the same price.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Color       string    `json:"color"`
	Material    string    `json:"material"`
	Price       int64     `json:"price"`
	Image       string    `json:"image,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
