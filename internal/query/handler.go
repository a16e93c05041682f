package query

import (
	"sort"
	"strconv"

	"github.com/example/furnishop/internal/browse"
	"github.com/example/furnishop/internal/catalog"
	"github.com/example/furnishop/internal/domain/cart"
	"github.com/example/furnishop/internal/domain/wishlist"
	"github.com/example/furnishop/internal/infrastructure/store"
	"github.com/example/furnishop/internal/readmodel"
)

type Handler struct {
	readStore store.ReadStoreInterface
}

func NewHandler(readStore store.ReadStoreInterface) *Handler {
	return &Handler{readStore: readStore}
}

// BrowseResult is a single page of the storefront listing
type BrowseResult struct {
	Products     []catalog.Product `json:"products"`
	TotalPages   int               `json:"total_pages"`
	TotalResults int               `json:"total_results"`
}

// Facets lists the distinct filterable values across the live catalog
type Facets struct {
	Categories []string `json:"categories"`
	Colors     []string `json:"colors"`
	Materials  []string `json:"materials"`
}

// BrowseProducts runs the listing pipeline: the live catalog in ascending ID
// order, filtered, sorted, then paginated.
func (h *Handler) BrowseProducts(criteria browse.Criteria, key browse.SortKey, page, pageSize int) BrowseResult {
	matched := browse.Filter(h.liveCatalog(), criteria)
	sorted := browse.Sort(matched, key)
	pg := browse.Paginate(sorted, page, pageSize)

	return BrowseResult{
		Products:     pg.Visible,
		TotalPages:   pg.TotalPages,
		TotalResults: len(sorted),
	}
}

// GetFacets returns the distinct categories, colors and materials of the
// live catalog, each sorted alphabetically.
func (h *Handler) GetFacets() Facets {
	categories := map[string]struct{}{}
	colors := map[string]struct{}{}
	materials := map[string]struct{}{}

	for _, p := range h.liveCatalog() {
		categories[p.Category] = struct{}{}
		colors[p.Color] = struct{}{}
		materials[p.Material] = struct{}{}
	}

	return Facets{
		Categories: sortedKeys(categories),
		Colors:     sortedKeys(colors),
		Materials:  sortedKeys(materials),
	}
}

// liveCatalog returns the non-retired products in ascending ID order
func (h *Handler) liveCatalog() []catalog.Product {
	items := h.readStore.GetAll("products")
	products := make([]catalog.Product, 0, len(items))
	for _, item := range items {
		rm := item.(*readmodel.ProductReadModel)
		if rm.Retired {
			continue
		}
		products = append(products, catalog.Product{
			ID:          rm.ID,
			Name:        rm.Name,
			Category:    rm.Category,
			Color:       rm.Color,
			Material:    rm.Material,
			Price:       rm.Price,
			Image:       rm.Image,
			Description: rm.Description,
			CreatedAt:   rm.CreatedAt,
			UpdatedAt:   rm.UpdatedAt,
		})
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Products

func (h *Handler) GetProduct(id int64) (*readmodel.ProductReadModel, bool) {
	data, ok := h.readStore.Get("products", strconv.FormatInt(id, 10))
	if !ok {
		return nil, false
	}
	return data.(*readmodel.ProductReadModel), true
}

func (h *Handler) ListProducts() []*readmodel.ProductReadModel {
	items := h.readStore.GetAll("products")
	products := make([]*readmodel.ProductReadModel, 0, len(items))
	for _, item := range items {
		products = append(products, item.(*readmodel.ProductReadModel))
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products
}

// Cart

// GetCart never misses: a session without cart events owns an empty cart.
func (h *Handler) GetCart(sessionID string) *readmodel.CartReadModel {
	cartID := cart.CartID(sessionID)
	data, ok := h.readStore.Get("carts", cartID)
	if !ok {
		return &readmodel.CartReadModel{
			ID:        cartID,
			SessionID: sessionID,
			Items:     []readmodel.CartItemReadModel{},
			Total:     0,
		}
	}
	return data.(*readmodel.CartReadModel)
}

// Wishlist

func (h *Handler) GetWishlist(sessionID string) *readmodel.WishlistReadModel {
	wishlistID := wishlist.WishlistID(sessionID)
	data, ok := h.readStore.Get("wishlists", wishlistID)
	if !ok {
		return &readmodel.WishlistReadModel{
			ID:        wishlistID,
			SessionID: sessionID,
			Items:     []readmodel.WishlistItemReadModel{},
		}
	}
	return data.(*readmodel.WishlistReadModel)
}

// IsSaved answers wishlist membership from the index without scanning items
func (h *Handler) IsSaved(sessionID string, productID int64) bool {
	key := wishlist.WishlistID(sessionID) + "/" + strconv.FormatInt(productID, 10)
	_, ok := h.readStore.Get("wishlist_index", key)
	return ok
}

// Orders

func (h *Handler) GetOrder(id string) (*readmodel.OrderReadModel, bool) {
	data, ok := h.readStore.Get("orders", id)
	if !ok {
		return nil, false
	}
	return data.(*readmodel.OrderReadModel), true
}

func (h *Handler) ListOrdersBySession(sessionID string) []*readmodel.OrderReadModel {
	items := h.readStore.GetAll("orders")
	orders := make([]*readmodel.OrderReadModel, 0)
	for _, item := range items {
		o := item.(*readmodel.OrderReadModel)
		if o.SessionID == sessionID {
			orders = append(orders, o)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.Before(orders[j].CreatedAt) })
	return orders
}

// Notifications

func (h *Handler) ListNotificationsBySession(sessionID string) []*readmodel.NotificationReadModel {
	items := h.readStore.GetAll("notifications")
	notices := make([]*readmodel.NotificationReadModel, 0)
	for _, item := range items {
		n := item.(*readmodel.NotificationReadModel)
		if n.SessionID == sessionID {
			notices = append(notices, n)
		}
	}
	sort.Slice(notices, func(i, j int) bool { return notices[i].CreatedAt.Before(notices[j].CreatedAt) })
	return notices
}
