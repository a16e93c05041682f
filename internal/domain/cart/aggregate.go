package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/example/furnishop/internal/domain/aggregate"
	"github.com/example/furnishop/internal/infrastructure/store"
)

const AggregateType = "Cart"

var (
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidProduct  = errors.New("product_id is required")
)

type CartItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
	UnitPrice int64 `json:"unit_price"`
}

// Cart is the write-side state, rebuilt by replay. Items are keyed by
// product ID so a product can never occupy two lines; display ordering is
// the read model's concern.
type Cart struct {
	ID        string             `json:"id"`
	SessionID string             `json:"session_id"`
	Items     map[int64]CartItem `json:"items"`
	Version   int                `json:"version"`
}

func (c *Cart) GetID() string    { return c.ID }
func (c *Cart) GetVersion() int  { return c.Version }
func (c *Cart) SetVersion(v int) { c.Version = v }

// CartID returns the aggregate ID for a session's cart
func CartID(sessionID string) string {
	return "cart-" + sessionID
}

// ApplyEvent applies a single event to the cart state
func (c *Cart) ApplyEvent(event store.Event) error {
	switch event.EventType {
	case EventItemAdded:
		var data ItemAddedToCart
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		if c.Items == nil {
			c.Items = make(map[int64]CartItem)
		}
		c.ID = data.CartID
		c.SessionID = data.SessionID
		if existing, ok := c.Items[data.ProductID]; ok {
			existing.Quantity += data.Quantity
			existing.UnitPrice = data.UnitPrice
			c.Items[data.ProductID] = existing
		} else {
			c.Items[data.ProductID] = CartItem{
				ProductID: data.ProductID,
				Quantity:  data.Quantity,
				UnitPrice: data.UnitPrice,
			}
		}
	case EventQuantitySet:
		var data CartItemQuantitySet
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		// Setting quantity on an absent line is a no-op; removal of
		// non-positive quantities happens on the write side.
		if existing, ok := c.Items[data.ProductID]; ok {
			existing.Quantity = data.Quantity
			c.Items[data.ProductID] = existing
		}
	case EventItemRemoved:
		var data ItemRemovedFromCart
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		delete(c.Items, data.ProductID)
	case EventCartCleared:
		var data CartCleared
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		c.Items = make(map[int64]CartItem)
	}
	c.Version = event.Version
	return nil
}

type Service struct {
	eventStore store.EventStoreInterface
}

func NewService(es store.EventStoreInterface) *Service {
	return &Service{eventStore: es}
}

// load rebuilds a session's cart, returning an empty cart when none exists
func (s *Service) load(ctx context.Context, cartID, sessionID string) (*Cart, error) {
	cart, found, err := aggregate.Load(ctx, s.eventStore, cartID, func() *Cart {
		return &Cart{Items: make(map[int64]CartItem)}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if !found {
		return &Cart{ID: cartID, SessionID: sessionID, Items: make(map[int64]CartItem)}, nil
	}
	return cart, nil
}

func (s *Service) append(ctx context.Context, cart *Cart, eventType string, data any) error {
	storedEvent, err := s.eventStore.Append(ctx, cart.ID, AggregateType, eventType, data)
	if err != nil {
		return err
	}
	if storedEvent != nil {
		cart.Version = storedEvent.Version
	}
	if err := aggregate.MaybeSnapshot(ctx, s.eventStore, cart, AggregateType); err != nil {
		log.WithError(err).Warnf("[Cart] Failed to create snapshot for cart %s", cart.ID)
	}
	return nil
}

// AddItem appends a quantity to the session's cart. Adding a product that is
// already in the cart increments its line instead of duplicating it.
func (s *Service) AddItem(ctx context.Context, sessionID string, productID int64, quantity int, unitPrice int64) error {
	if productID <= 0 {
		return ErrInvalidProduct
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	cartID := CartID(sessionID)
	cart, err := s.load(ctx, cartID, sessionID)
	if err != nil {
		return err
	}

	return s.append(ctx, cart, EventItemAdded, ItemAddedToCart{
		CartID:    cartID,
		SessionID: sessionID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		AddedAt:   time.Now(),
	})
}

// SetQuantity replaces a line's quantity exactly. A non-positive quantity
// removes the line, mirroring how the storefront's quantity stepper behaves.
func (s *Service) SetQuantity(ctx context.Context, sessionID string, productID int64, quantity int) error {
	if productID <= 0 {
		return ErrInvalidProduct
	}
	if quantity <= 0 {
		return s.RemoveItem(ctx, sessionID, productID)
	}

	cartID := CartID(sessionID)
	cart, err := s.load(ctx, cartID, sessionID)
	if err != nil {
		return err
	}

	return s.append(ctx, cart, EventQuantitySet, CartItemQuantitySet{
		CartID:    cartID,
		SessionID: sessionID,
		ProductID: productID,
		Quantity:  quantity,
		SetAt:     time.Now(),
	})
}

// RemoveItem drops a line. Removing an absent product is not an error; the
// projection simply has nothing to do.
func (s *Service) RemoveItem(ctx context.Context, sessionID string, productID int64) error {
	if productID <= 0 {
		return ErrInvalidProduct
	}

	cartID := CartID(sessionID)
	cart, err := s.load(ctx, cartID, sessionID)
	if err != nil {
		return err
	}

	return s.append(ctx, cart, EventItemRemoved, ItemRemovedFromCart{
		CartID:    cartID,
		SessionID: sessionID,
		ProductID: productID,
		RemovedAt: time.Now(),
	})
}

// Clear empties the session's cart
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	cartID := CartID(sessionID)
	cart, err := s.load(ctx, cartID, sessionID)
	if err != nil {
		return err
	}

	return s.append(ctx, cart, EventCartCleared, CartCleared{
		CartID:    cartID,
		SessionID: sessionID,
		ClearedAt: time.Now(),
	})
}
