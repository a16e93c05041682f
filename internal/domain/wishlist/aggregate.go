package wishlist

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

const AggregateType = "Wishlist"

var ErrInvalidProduct = errors.New("product_id is required")

// Wishlist is the write-side state: the set of saved product IDs plus
// insertion order for display. Saving is idempotent, so the event stream
// never carries a duplicate save for a product already present.
type Wishlist struct {
	ID        string             `json:"id"`
	SessionID string             `json:"session_id"`
	Saved     map[int64]struct{} `json:"-"`
	Order     []int64            `json:"order"`
	Version   int                `json:"version"`
}

func (w *Wishlist) GetID() string    { return w.ID }
func (w *Wishlist) GetVersion() int  { return w.Version }
func (w *Wishlist) SetVersion(v int) { w.Version = v }

// Contains reports membership in O(1)
func (w *Wishlist) Contains(productID int64) bool {
	_, ok := w.Saved[productID]
	return ok
}

// UnmarshalJSON rebuilds the membership set from Order, which is all a
// snapshot persists.
func (w *Wishlist) UnmarshalJSON(data []byte) error {
	type alias Wishlist
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*w = Wishlist(a)
	w.Saved = make(map[int64]struct{}, len(w.Order))
	for _, id := range w.Order {
		w.Saved[id] = struct{}{}
	}
	return nil
}

// WishlistID returns the aggregate ID for a session's wishlist
func WishlistID(sessionID string) string {
	return "wishlist-" + sessionID
}

// ApplyEvent applies a single event to the wishlist state
func (w *Wishlist) ApplyEvent(event store.Event) error {
	switch event.EventType {
	case EventProductSaved:
		var data ProductSaved
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		if w.Saved == nil {
			w.Saved = make(map[int64]struct{})
		}
		w.ID = data.WishlistID
		w.SessionID = data.SessionID
		if !w.Contains(data.ProductID) {
			w.Saved[data.ProductID] = struct{}{}
			w.Order = append(w.Order, data.ProductID)
		}
	case EventProductUnsaved:
		var data ProductUnsaved
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		if w.Contains(data.ProductID) {
			delete(w.Saved, data.ProductID)
			for i, id := range w.Order {
				if id == data.ProductID {
					w.Order = append(w.Order[:i], w.Order[i+1:]...)
					break
				}
			}
		}
	case EventWishlistCleared:
		var data WishlistCleared
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		w.Saved = make(map[int64]struct{})
		w.Order = nil
	}
	w.Version = event.Version
	return nil
}

type Service struct {
	eventStore store.EventStoreInterface
}

func NewService(es store.EventStoreInterface) *Service {
	return &Service{eventStore: es}
}

func (s *Service) load(ctx context.Context, wishlistID, sessionID string) (*Wishlist, error) {
	wl, found, err := aggregate.Load(ctx, s.eventStore, wishlistID, func() *Wishlist {
		return &Wishlist{Saved: make(map[int64]struct{})}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load wishlist: %w", err)
	}
	if !found {
		return &Wishlist{ID: wishlistID, SessionID: sessionID, Saved: make(map[int64]struct{})}, nil
	}
	return wl, nil
}

func (s *Service) append(ctx context.Context, wl *Wishlist, eventType string, data any) error {
	storedEvent, err := s.eventStore.Append(ctx, wl.ID, AggregateType, eventType, data)
	if err != nil {
		return err
	}
	if storedEvent != nil {
		wl.Version = storedEvent.Version
	}
	if err := aggregate.MaybeSnapshot(ctx, s.eventStore, wl, AggregateType); err != nil {
		log.WithError(err).Warnf("[Wishlist] Failed to create snapshot for wishlist %s", wl.ID)
	}
	return nil
}

// Save adds a product to the session's wishlist. Saving a product that is
// already present is a no-op and emits nothing.
func (s *Service) Save(ctx context.Context, sessionID string, productID int64) error {
	if productID <= 0 {
		return ErrInvalidProduct
	}

	wishlistID := WishlistID(sessionID)
	wl, err := s.load(ctx, wishlistID, sessionID)
	if err != nil {
		return err
	}
	if wl.Contains(productID) {
		return nil
	}

	return s.append(ctx, wl, EventProductSaved, ProductSaved{
		WishlistID: wishlistID,
		SessionID:  sessionID,
		ProductID:  productID,
		SavedAt:    time.Now(),
	})
}

// Unsave removes a product; absent products are a projected no-op
func (s *Service) Unsave(ctx context.Context, sessionID string, productID int64) error {
	if productID <= 0 {
		return ErrInvalidProduct
	}

	wishlistID := WishlistID(sessionID)
	wl, err := s.load(ctx, wishlistID, sessionID)
	if err != nil {
		return err
	}

	return s.append(ctx, wl, EventProductUnsaved, ProductUnsaved{
		WishlistID: wishlistID,
		SessionID:  sessionID,
		ProductID:  productID,
		UnsavedAt:  time.Now(),
	})
}

// Clear empties the session's wishlist
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	wishlistID := WishlistID(sessionID)
	wl, err := s.load(ctx, wishlistID, sessionID)
	if err != nil {
		return err
	}

	return s.append(ctx, wl, EventWishlistCleared, WishlistCleared{
		WishlistID: wishlistID,
		SessionID:  sessionID,
		ClearedAt:  time.Now(),
	})
}
