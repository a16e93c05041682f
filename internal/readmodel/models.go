package readmodel

import "time"

// ProductReadModel is the read model for catalog products
type ProductReadModel struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Color       string    `json:"color"`
	Material    string    `json:"material"`
	Price       int64     `json:"price"`
	Image       string    `json:"image,omitempty"`
	Description string    `json:"description,omitempty"`
	Retired     bool      `json:"retired"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CartItemReadModel represents a line in the cart
type CartItemReadModel struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// CartReadModel is the read model for shopping carts
type CartReadModel struct {
	ID        string              `json:"id"`
	SessionID string              `json:"session_id"`
	Items     []CartItemReadModel `json:"items"`
	Total     int64               `json:"total"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// WishlistItemReadModel represents a saved product on a wishlist
type WishlistItemReadModel struct {
	ProductID int64     `json:"product_id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	SavedAt   time.Time `json:"saved_at"`
}

// WishlistReadModel is the read model for wishlists.
// Items keep the order products were saved in.
type WishlistReadModel struct {
	ID        string                  `json:"id"`
	SessionID string                  `json:"session_id"`
	Items     []WishlistItemReadModel `json:"items"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// WishlistIndexEntry marks a single product as saved on a wishlist.
// Stored under its own key so membership checks avoid scanning the list.
type WishlistIndexEntry struct {
	WishlistID string `json:"wishlist_id"`
	ProductID  int64  `json:"product_id"`
}

// OrderItemReadModel represents an item in an order
type OrderItemReadModel struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// OrderReadModel is the read model for orders
type OrderReadModel struct {
	ID        string               `json:"id"`
	SessionID string               `json:"session_id"`
	Items     []OrderItemReadModel `json:"items"`
	Total     int64                `json:"total"`
	Status    string               `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// UserReadModel is the read model for users
type UserReadModel struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
}

// NotificationReadModel is a per-session notice produced from domain events
type NotificationReadModel struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
