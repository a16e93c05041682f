package cart

import "time"

const (
	EventItemAdded   = "ItemAddedToCart"
	EventQuantitySet = "CartItemQuantitySet"
	EventItemRemoved = "ItemRemovedFromCart"
	EventCartCleared = "CartCleared"
)

type ItemAddedToCart struct {
	CartID    string    `json:"cart_id"`
	SessionID string    `json:"session_id"`
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	UnitPrice int64     `json:"unit_price"`
	AddedAt   time.Time `json:"added_at"`
}

// CartItemQuantitySet replaces a line's quantity outright, unlike
// ItemAddedToCart which merges additively on replay.
type CartItemQuantitySet struct {
	CartID    string    `json:"cart_id"`
	SessionID string    `json:"session_id"`
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	SetAt     time.Time `json:"set_at"`
}

type ItemRemovedFromCart struct {
	CartID    string    `json:"cart_id"`
	SessionID string    `json:"session_id"`
	ProductID int64     `json:"product_id"`
	RemovedAt time.Time `json:"removed_at"`
}

type CartCleared struct {
	CartID    string    `json:"cart_id"`
	SessionID string    `json:"session_id"`
	ClearedAt time.Time `json:"cleared_at"`
}
