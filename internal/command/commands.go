package command

import "github.com/example/furnishop/internal/catalog"

// Product Commands
type CreateProduct struct {
	Product catalog.Product `json:"product"`
}

type UpdateProduct struct {
	Product catalog.Product `json:"product"`
}

type RetireProduct struct {
	ProductID int64 `json:"product_id"`
}

// Cart Commands
type AddToCart struct {
	SessionID string `json:"session_id"`
	ProductID int64  `json:"product_id"`
	// Quantity below 1 means "use the storefront default of one"
	Quantity int `json:"quantity"`
}

type SetCartQuantity struct {
	SessionID string `json:"session_id"`
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type RemoveFromCart struct {
	SessionID string `json:"session_id"`
	ProductID int64  `json:"product_id"`
}

type ClearCart struct {
	SessionID string `json:"session_id"`
}

// Wishlist Commands
type SaveToWishlist struct {
	SessionID string `json:"session_id"`
	ProductID int64  `json:"product_id"`
}

type RemoveFromWishlist struct {
	SessionID string `json:"session_id"`
	ProductID int64  `json:"product_id"`
}

type ClearWishlist struct {
	SessionID string `json:"session_id"`
}

// Order Commands
type PlaceOrder struct {
	SessionID string `json:"session_id"`
}

type CancelOrder struct {
	OrderID string `json:"order_id"`
	Reason  string `json:"reason"`
}
