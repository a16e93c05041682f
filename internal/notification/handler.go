package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/example/furnishop/internal/domain/cart"
	"github.com/example/furnishop/internal/domain/order"
	"github.com/example/furnishop/internal/domain/wishlist"
	"github.com/example/furnishop/internal/infrastructure/store"
	"github.com/example/furnishop/internal/readmodel"
)

// maxNoticesPerSession bounds how many notices a session can accumulate;
// older ones are dropped once the cap is hit.
const maxNoticesPerSession = 20

// Handler turns cart, wishlist and order events into per-session notices,
// the toasts the storefront flashes after each action.
type Handler struct {
	readStore store.ReadStoreInterface
}

func NewHandler(readStore store.ReadStoreInterface) *Handler {
	return &Handler{readStore: readStore}
}

// HandleEvent processes a serialized event from the bus
func (h *Handler) HandleEvent(ctx context.Context, key, value []byte) error {
	var event store.Event
	if err := json.Unmarshal(value, &event); err != nil {
		log.WithError(err).Error("[Notifier] Failed to unmarshal event")
		return err
	}

	switch event.EventType {
	case cart.EventItemAdded:
		var e cart.ItemAddedToCart
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		h.notify(e.SessionID, fmt.Sprintf("%s added to cart", h.productName(e.ProductID)), e.AddedAt)

	case cart.EventItemRemoved:
		var e cart.ItemRemovedFromCart
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		h.notify(e.SessionID, fmt.Sprintf("%s removed from cart", h.productName(e.ProductID)), e.RemovedAt)

	case wishlist.EventProductSaved:
		var e wishlist.ProductSaved
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		h.notify(e.SessionID, fmt.Sprintf("%s saved to wishlist", h.productName(e.ProductID)), e.SavedAt)

	case wishlist.EventProductUnsaved:
		var e wishlist.ProductUnsaved
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		h.notify(e.SessionID, fmt.Sprintf("%s removed from wishlist", h.productName(e.ProductID)), e.UnsavedAt)

	case order.EventOrderPlaced:
		var e order.OrderPlaced
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		h.notify(e.SessionID, fmt.Sprintf("Order %s placed", e.OrderID), e.PlacedAt)
	}

	return nil
}

func (h *Handler) productName(productID int64) string {
	if data, ok := h.readStore.Get("products", strconv.FormatInt(productID, 10)); ok {
		if prod, ok := data.(*readmodel.ProductReadModel); ok {
			return prod.Name
		}
	}
	return fmt.Sprintf("Product %d", productID)
}

func (h *Handler) notify(sessionID, message string, at time.Time) {
	n := &readmodel.NotificationReadModel{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Message:   message,
		CreatedAt: at,
	}
	h.readStore.Set("notifications", n.ID, n)
	h.trim(sessionID)

	log.Debugf("[Notifier] %s: %s", sessionID, message)
}

// trim drops a session's oldest notices once it exceeds the cap
func (h *Handler) trim(sessionID string) {
	var notices []*readmodel.NotificationReadModel
	for _, item := range h.readStore.GetAll("notifications") {
		n := item.(*readmodel.NotificationReadModel)
		if n.SessionID == sessionID {
			notices = append(notices, n)
		}
	}
	if len(notices) <= maxNoticesPerSession {
		return
	}

	sort.Slice(notices, func(i, j int) bool { return notices[i].CreatedAt.Before(notices[j].CreatedAt) })
	for _, n := range notices[:len(notices)-maxNoticesPerSession] {
		h.readStore.Delete("notifications", n.ID)
	}
}
