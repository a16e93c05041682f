package order

import "time"

const (
	EventOrderPlaced    = "OrderPlaced"
	EventOrderCancelled = "OrderCancelled"
)

type OrderItem struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

type OrderPlaced struct {
	OrderID   string      `json:"order_id"`
	SessionID string      `json:"session_id"`
	Items     []OrderItem `json:"items"`
	Total     int64       `json:"total"`
	PlacedAt  time.Time   `json:"placed_at"`
}

type OrderCancelled struct {
	OrderID     string    `json:"order_id"`
	Reason      string    `json:"reason"`
	CancelledAt time.Time `json:"cancelled_at"`
}
