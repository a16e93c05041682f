package wishlist

import "time"

const (
	EventProductSaved    = "ProductSavedToWishlist"
	EventProductUnsaved  = "ProductUnsavedFromWishlist"
	EventWishlistCleared = "WishlistCleared"
)

type ProductSaved struct {
	WishlistID string    `json:"wishlist_id"`
	SessionID  string    `json:"session_id"`
	ProductID  int64     `json:"product_id"`
	SavedAt    time.Time `json:"saved_at"`
}

type ProductUnsaved struct {
	WishlistID string    `json:"wishlist_id"`
	SessionID  string    `json:"session_id"`
	ProductID  int64     `json:"product_id"`
	UnsavedAt  time.Time `json:"unsaved_at"`
}

type WishlistCleared struct {
	WishlistID string    `json:"wishlist_id"`
	SessionID  string    `json:"session_id"`
	ClearedAt  time.Time `json:"cleared_at"`
}
