package projection

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/example/furnishop/internal/domain/cart"
	"github.com/example/furnishop/internal/domain/order"
	"github.com/example/furnishop/internal/domain/product"
	"github.com/example/furnishop/internal/domain/user"
	"github.com/example/furnishop/internal/domain/wishlist"
	"github.com/example/furnishop/internal/infrastructure/store"
	"github.com/example/furnishop/internal/readmodel"
)

// Projector folds domain events into the read models the query side serves.
type Projector struct {
	readStore store.ReadStoreInterface
}

func NewProjector(readStore store.ReadStoreInterface) *Projector {
	return &Projector{readStore: readStore}
}

// HandleEvent consumes a serialized event from the bus and updates read models
func (p *Projector) HandleEvent(ctx context.Context, key, value []byte) error {
	var event store.Event
	if err := json.Unmarshal(value, &event); err != nil {
		return err
	}

	log.Debugf("[Projector] Received event: %s (aggregate: %s)", event.EventType, event.AggregateType)

	switch event.AggregateType {
	case product.AggregateType:
		return p.handleProductEvent(event)
	case cart.AggregateType:
		return p.handleCartEvent(event)
	case wishlist.AggregateType:
		return p.handleWishlistEvent(event)
	case order.AggregateType:
		return p.handleOrderEvent(event)
	case user.AggregateType:
		return p.handleUserEvent(event)
	}

	return nil
}

func productKey(id int64) string {
	return strconv.FormatInt(id, 10)
}

func wishlistIndexKey(wishlistID string, productID int64) string {
	return fmt.Sprintf("%s/%d", wishlistID, productID)
}

func (p *Projector) handleProductEvent(event store.Event) error {
	switch event.EventType {
	case product.EventProductCreated:
		var e product.ProductCreated
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		p.readStore.Set("products", productKey(e.ProductID), &readmodel.ProductReadModel{
			ID:          e.ProductID,
			Name:        e.Name,
			Category:    e.Category,
			Color:       e.Color,
			Material:    e.Material,
			Price:       e.Price,
			Image:       e.Image,
			Description: e.Description,
			CreatedAt:   e.CreatedAt,
			UpdatedAt:   e.CreatedAt,
		})

	case product.EventProductUpdated:
		var e product.ProductUpdated
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		p.readStore.Update("products", productKey(e.ProductID), func(current any) any {
			prod := current.(*readmodel.ProductReadModel)
			prod.Name = e.Name
			prod.Category = e.Category
			prod.Color = e.Color
			prod.Material = e.Material
			prod.Price = e.Price
			prod.Image = e.Image
			prod.Description = e.Description
			prod.UpdatedAt = e.UpdatedAt
			return prod
		})

	case product.EventProductRetired:
		var e product.ProductRetired
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		p.readStore.Update("products", productKey(e.ProductID), func(current any) any {
			prod := current.(*readmodel.ProductReadModel)
			prod.Retired = true
			prod.UpdatedAt = e.RetiredAt
			return prod
		})
	}

	return nil
}

func (p *Projector) handleCartEvent(event store.Event) error {
	switch event.EventType {
	case cart.EventItemAdded:
		var e cart.ItemAddedToCart
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}

		productName := ""
		if prod, ok := p.readStore.Get("products", productKey(e.ProductID)); ok {
			productName = prod.(*readmodel.ProductReadModel).Name
		}

		if _, ok := p.readStore.Get("carts", e.CartID); !ok {
			p.readStore.Set("carts", e.CartID, &readmodel.CartReadModel{
				ID:        e.CartID,
				SessionID: e.SessionID,
				Items: []readmodel.CartItemReadModel{
					{ProductID: e.ProductID, Name: productName, Quantity: e.Quantity, UnitPrice: e.UnitPrice},
				},
				Total:     e.UnitPrice * int64(e.Quantity),
				UpdatedAt: e.AddedAt,
			})
			return nil
		}

		p.readStore.Update("carts", e.CartID, func(current any) any {
			c := current.(*readmodel.CartReadModel)
			found := false
			for i, item := range c.Items {
				if item.ProductID == e.ProductID {
					c.Items[i].Quantity += e.Quantity
					found = true
					break
				}
			}
			if !found {
				c.Items = append(c.Items, readmodel.CartItemReadModel{
					ProductID: e.ProductID,
					Name:      productName,
					Quantity:  e.Quantity,
					UnitPrice: e.UnitPrice,
				})
			}
			c.Total = calculateCartTotal(c.Items)
			c.UpdatedAt = e.AddedAt
			return c
		})

	case cart.EventQuantitySet:
		var e cart.CartItemQuantitySet
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		p.readStore.Update("carts", e.CartID, func(current any) any {
			c := current.(*readmodel.CartReadModel)
			// Setting quantity on a line the cart does not hold is a no-op
			for i, item := range c.Items {
				if item.ProductID == e.ProductID {
					c.Items[i].Quantity = e.Quantity
					c.Total = calculateCartTotal(c.Items)
					c.UpdatedAt = e.SetAt
					break
				}
			}
			return c
		})

	case cart.EventItemRemoved:
		var e cart.ItemRemovedFromCart
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		p.readStore.Update("carts", e.CartID, func(current any) any {
			c := current.(*readmodel.CartReadModel)
			newItems := make([]readmodel.CartItemReadModel, 0, len(c.Items))
			for _, item := range c.Items {
				if item.ProductID != e.ProductID {
					newItems = append(newItems, item)
				}
			}
			c.Items = newItems
			c.Total = calculateCartTotal(c.Items)
			c.UpdatedAt = e.RemovedAt
			return c
		})

	case cart.EventCartCleared:
		var e cart.CartCleared
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		p.readStore.Set("carts", e.CartID, &readmodel.CartReadModel{
			ID:        e.CartID,
			SessionID: e.SessionID,
			Items:     []readmodel.CartItemReadModel{},
			Total:     0,
			UpdatedAt: e.ClearedAt,
		})
	}

	return nil
}

func (p *Projector) handleWishlistEvent(event store.Event) error {
	switch event.EventType {
	case wishlist.EventProductSaved:
		var e wishlist.ProductSaved
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}

		name, price := "", int64(0)
		if prod, ok := p.readStore.Get("products", productKey(e.ProductID)); ok {
			rm := prod.(*readmodel.ProductReadModel)
			name, price = rm.Name, rm.Price
		}
		item := readmodel.WishlistItemReadModel{
			ProductID: e.ProductID,
			Name:      name,
			Price:     price,
			SavedAt:   e.SavedAt,
		}

		if _, ok := p.readStore.Get("wishlists", e.WishlistID); !ok {
			p.readStore.Set("wishlists", e.WishlistID, &readmodel.WishlistReadModel{
				ID:        e.WishlistID,
				SessionID: e.SessionID,
				Items:     []readmodel.WishlistItemReadModel{item},
				UpdatedAt: e.SavedAt,
			})
		} else {
			p.readStore.Update("wishlists", e.WishlistID, func(current any) any {
				wl := current.(*readmodel.WishlistReadModel)
				for _, existing := range wl.Items {
					if existing.ProductID == e.ProductID {
						return wl
					}
				}
				wl.Items = append(wl.Items, item)
				wl.UpdatedAt = e.SavedAt
				return wl
			})
		}

		p.readStore.Set("wishlist_index", wishlistIndexKey(e.WishlistID, e.ProductID), &readmodel.WishlistIndexEntry{
			WishlistID: e.WishlistID,
			ProductID:  e.ProductID,
		})

	case wishlist.EventProductUnsaved:
		var e wishlist.ProductUnsaved
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		p.readStore.Update("wishlists", e.WishlistID, func(current any) any {
			wl := current.(*readmodel.WishlistReadModel)
			newItems := make([]readmodel.WishlistItemReadModel, 0, len(wl.Items))
			for _, item := range wl.Items {
				if item.ProductID != e.ProductID {
					newItems = append(newItems, item)
				}
			}
			wl.Items = newItems
			wl.UpdatedAt = e.UnsavedAt
			return wl
		})
		p.readStore.Delete("wishlist_index", wishlistIndexKey(e.WishlistID, e.ProductID))

	case wishlist.EventWishlistCleared:
		var e wishlist.WishlistCleared
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		if existing, ok := p.readStore.Get("wishlists", e.WishlistID); ok {
			wl := existing.(*readmodel.WishlistReadModel)
			for _, item := range wl.Items {
				p.readStore.Delete("wishlist_index", wishlistIndexKey(e.WishlistID, item.ProductID))
			}
		}
		p.readStore.Set("wishlists", e.WishlistID, &readmodel.WishlistReadModel{
			ID:        e.WishlistID,
			SessionID: e.SessionID,
			Items:     []readmodel.WishlistItemReadModel{},
			UpdatedAt: e.ClearedAt,
		})
	}

	return nil
}

func (p *Projector) handleOrderEvent(event store.Event) error {
	switch event.EventType {
	case order.EventOrderPlaced:
		var e order.OrderPlaced
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		items := make([]readmodel.OrderItemReadModel, len(e.Items))
		for i, item := range e.Items {
			items[i] = readmodel.OrderItemReadModel{
				ProductID: item.ProductID,
				Name:      item.Name,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
			}
		}
		p.readStore.Set("orders", e.OrderID, &readmodel.OrderReadModel{
			ID:        e.OrderID,
			SessionID: e.SessionID,
			Items:     items,
			Total:     e.Total,
			Status:    "pending",
			CreatedAt: e.PlacedAt,
			UpdatedAt: e.PlacedAt,
		})

	case order.EventOrderCancelled:
		var e order.OrderCancelled
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		p.readStore.Update("orders", e.OrderID, func(current any) any {
			o := current.(*readmodel.OrderReadModel)
			o.Status = "cancelled"
			o.UpdatedAt = e.CancelledAt
			return o
		})
	}

	return nil
}

func (p *Projector) handleUserEvent(event store.Event) error {
	switch event.EventType {
	case user.EventUserCreated:
		var e user.UserCreated
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		p.readStore.Set("users", e.UserID, &readmodel.UserReadModel{
			ID:           e.UserID,
			Email:        e.Email,
			PasswordHash: e.PasswordHash,
			Name:         e.Name,
			CreatedAt:    e.CreatedAt,
		})
	}

	return nil
}

// calculateCartTotal recomputes the total from scratch after every mutation
func calculateCartTotal(items []readmodel.CartItemReadModel) int64 {
	var total int64
	for _, item := range items {
		total += item.UnitPrice * int64(item.Quantity)
	}
	return total
}
