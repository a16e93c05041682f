package order

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/example/furnishop/internal/domain/aggregate"
	"github.com/example/furnishop/internal/infrastructure/store"
)

const AggregateType = "Order"

type Status string

const (
	StatusPending   Status = "pending"
	StatusCancelled Status = "cancelled"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrEmptyOrder     = errors.New("order must have at least one item")
	ErrOrderCancelled = errors.New("order is already cancelled")
)

// Order is the checkout write-side state. Payment is out of scope, so the
// lifecycle is just pending -> cancelled.
type Order struct {
	ID        string      `json:"id"`
	SessionID string      `json:"session_id"`
	Items     []OrderItem `json:"items"`
	Total     int64       `json:"total"`
	Status    Status      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	Version   int         `json:"version"`
}

func (o *Order) GetID() string    { return o.ID }
func (o *Order) GetVersion() int  { return o.Version }
func (o *Order) SetVersion(v int) { o.Version = v }

// ApplyEvent applies a single event to the order state
func (o *Order) ApplyEvent(event store.Event) error {
	switch event.EventType {
	case EventOrderPlaced:
		var data OrderPlaced
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		o.ID = data.OrderID
		o.SessionID = data.SessionID
		o.Items = data.Items
		o.Total = data.Total
		o.Status = StatusPending
		o.CreatedAt = data.PlacedAt
		o.UpdatedAt = data.PlacedAt
	case EventOrderCancelled:
		var data OrderCancelled
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		o.Status = StatusCancelled
		o.UpdatedAt = data.CancelledAt
	}
	o.Version = event.Version
	return nil
}

type Service struct {
	eventStore store.EventStoreInterface
}

func NewService(es store.EventStoreInterface) *Service {
	return &Service{eventStore: es}
}

func (s *Service) load(ctx context.Context, orderID string) (*Order, error) {
	order, found, err := aggregate.Load(ctx, s.eventStore, orderID, func() *Order {
		return &Order{}
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// Place creates an order from the given cart lines. The total is derived
// from the items here, never taken from the caller.
func (s *Service) Place(ctx context.Context, sessionID string, items []OrderItem) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	orderID := uuid.New().String()
	now := time.Now()

	var total int64
	for _, item := range items {
		total += item.UnitPrice * int64(item.Quantity)
	}

	event := OrderPlaced{
		OrderID:   orderID,
		SessionID: sessionID,
		Items:     items,
		Total:     total,
		PlacedAt:  now,
	}

	storedEvent, err := s.eventStore.Append(ctx, orderID, AggregateType, EventOrderPlaced, event)
	if err != nil {
		return nil, err
	}

	order := &Order{
		ID:        orderID,
		SessionID: sessionID,
		Items:     items,
		Total:     total,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if storedEvent != nil {
		order.Version = storedEvent.Version
	}

	if err := aggregate.MaybeSnapshot(ctx, s.eventStore, order, AggregateType); err != nil {
		log.WithError(err).Warnf("[Order] Failed to create snapshot for order %s", order.ID)
	}

	return order, nil
}

// Cancel marks a pending order cancelled
func (s *Service) Cancel(ctx context.Context, orderID, reason string) error {
	order, err := s.load(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status == StatusCancelled {
		return ErrOrderCancelled
	}

	event := OrderCancelled{
		OrderID:     orderID,
		Reason:      reason,
		CancelledAt: time.Now(),
	}

	storedEvent, err := s.eventStore.Append(ctx, orderID, AggregateType, EventOrderCancelled, event)
	if err != nil {
		return err
	}

	order.Status = StatusCancelled
	if storedEvent != nil {
		order.Version = storedEvent.Version
	}

	if err := aggregate.MaybeSnapshot(ctx, s.eventStore, order, AggregateType); err != nil {
		log.WithError(err).Warnf("[Order] Failed to create snapshot for order %s", order.ID)
	}

	return nil
}
