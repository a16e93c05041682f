package product

import "time"

const (
	EventProductCreated = "ProductCreated"
	EventProductUpdated = "ProductUpdated"
	EventProductRetired = "ProductRetired"
)

type ProductCreated struct {
	ProductID   int64     `json:"product_id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Color       string    `json:"color"`
	Material    string    `json:"material"`
	Price       int64     `json:"price"`
	Image       string    `json:"image,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type ProductUpdated struct {
	ProductID   int64     `json:"product_id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Color       string    `json:"color"`
	Material    string    `json:"material"`
	Price       int64     `json:"price"`
	Image       string    `json:"image,omitempty"`
	Description string    `json:"description,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductRetired takes a product off the storefront without rewriting history
type ProductRetired struct {
	ProductID int64     `json:"product_id"`
	RetiredAt time.Time `json:"retired_at"`
}
