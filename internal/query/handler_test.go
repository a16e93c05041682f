package query

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/furnishop/internal/browse"
	"github.com/example/furnishop/internal/infrastructure/store"
	"github.com/example/furnishop/internal/readmodel"
)

func newTestHandler() (*Handler, *store.ReadStore) {
	rs := store.NewReadStore()
	return NewHandler(rs), rs
}

func seedProduct(rs *store.ReadStore, p *readmodel.ProductReadModel) {
	rs.Set("products", strconv.FormatInt(p.ID, 10), p)
}

func seedCatalog(rs *store.ReadStore) {
	seedProduct(rs, &readmodel.ProductReadModel{ID: 1, Name: "Oslo Sofa", Category: "Sofas", Color: "Grey", Material: "Fabric", Price: 24999})
	seedProduct(rs, &readmodel.ProductReadModel{ID: 2, Name: "Aria Armchair", Category: "Chairs", Color: "Blue", Material: "Fabric", Price: 8999})
	seedProduct(rs, &readmodel.ProductReadModel{ID: 3, Name: "Oak Dining Table", Category: "Tables", Color: "Brown", Material: "Wood", Price: 15999})
	seedProduct(rs, &readmodel.ProductReadModel{ID: 4, Name: "Walnut Bookshelf", Category: "Storage", Color: "Brown", Material: "Wood", Price: 12499})
	seedProduct(rs, &readmodel.ProductReadModel{ID: 5, Name: "Luna Floor Lamp", Category: "Lighting", Color: "Black", Material: "Metal", Price: 3499})
}

func browsedIDs(r BrowseResult) []int64 {
	out := make([]int64, len(r.Products))
	for i, p := range r.Products {
		out[i] = p.ID
	}
	return out
}

// ============================================
// Browse Tests
// ============================================

func TestHandler_BrowseProducts_DefaultOrderIsAscendingID(t *testing.T) {
	h, rs := newTestHandler()
	seedCatalog(rs)

	result := h.BrowseProducts(browse.Criteria{}, browse.SortDefault, 1, 10)

	assert.Equal(t, []int64{1, 2, 3, 4, 5}, browsedIDs(result))
	assert.Equal(t, 1, result.TotalPages)
	assert.Equal(t, 5, result.TotalResults)
}

func TestHandler_BrowseProducts_FilterSortPaginate(t *testing.T) {
	h, rs := newTestHandler()
	seedCatalog(rs)

	criteria := browse.Criteria{Materials: []string{"Wood", "Fabric"}}
	result := h.BrowseProducts(criteria, browse.SortPriceAsc, 1, 2)

	assert.Equal(t, []int64{2, 4}, browsedIDs(result))
	assert.Equal(t, 2, result.TotalPages)
	assert.Equal(t, 4, result.TotalResults)
}

func TestHandler_BrowseProducts_PageBeyondEndIsEmpty(t *testing.T) {
	h, rs := newTestHandler()
	seedCatalog(rs)

	result := h.BrowseProducts(browse.Criteria{}, browse.SortDefault, 4, 2)

	assert.Empty(t, result.Products)
	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, 5, result.TotalResults)
}

func TestHandler_BrowseProducts_SkipsRetired(t *testing.T) {
	h, rs := newTestHandler()
	seedCatalog(rs)
	seedProduct(rs, &readmodel.ProductReadModel{ID: 6, Name: "Retired Stool", Category: "Chairs", Price: 999, Retired: true})

	result := h.BrowseProducts(browse.Criteria{}, browse.SortDefault, 1, 10)

	assert.Equal(t, 5, result.TotalResults)
	assert.NotContains(t, browsedIDs(result), int64(6))
}

func TestHandler_GetFacets(t *testing.T) {
	h, rs := newTestHandler()
	seedCatalog(rs)

	facets := h.GetFacets()

	assert.Equal(t, []string{"Chairs", "Lighting", "Sofas", "Storage", "Tables"}, facets.Categories)
	assert.Equal(t, []string{"Black", "Blue", "Brown", "Grey"}, facets.Colors)
	assert.Equal(t, []string{"Fabric", "Metal", "Wood"}, facets.Materials)
}

// ============================================
// Product Tests
// ============================================

func TestHandler_GetProduct(t *testing.T) {
	h, rs := newTestHandler()
	seedCatalog(rs)

	p, ok := h.GetProduct(3)
	require.True(t, ok)
	assert.Equal(t, "Oak Dining Table", p.Name)

	_, ok = h.GetProduct(99)
	assert.False(t, ok)
}

func TestHandler_ListProducts_AscendingID(t *testing.T) {
	h, rs := newTestHandler()
	seedCatalog(rs)

	products := h.ListProducts()

	require.Len(t, products, 5)
	for i, p := range products {
		assert.Equal(t, int64(i+1), p.ID)
	}
}

// ============================================
// Cart and Wishlist Tests
// ============================================

func TestHandler_GetCart_AbsentReturnsEmptyCart(t *testing.T) {
	h, _ := newTestHandler()

	c := h.GetCart("session-1")

	assert.Equal(t, "cart-session-1", c.ID)
	assert.Empty(t, c.Items)
	assert.Equal(t, int64(0), c.Total)
}

func TestHandler_GetCart_Existing(t *testing.T) {
	h, rs := newTestHandler()
	rs.Set("carts", "cart-session-1", &readmodel.CartReadModel{
		ID:        "cart-session-1",
		SessionID: "session-1",
		Items:     []readmodel.CartItemReadModel{{ProductID: 3, Quantity: 2, UnitPrice: 899}},
		Total:     1798,
	})

	c := h.GetCart("session-1")

	require.Len(t, c.Items, 1)
	assert.Equal(t, int64(1798), c.Total)
}

func TestHandler_GetWishlist_AbsentReturnsEmpty(t *testing.T) {
	h, _ := newTestHandler()

	wl := h.GetWishlist("session-1")

	assert.Equal(t, "wishlist-session-1", wl.ID)
	assert.Empty(t, wl.Items)
}

func TestHandler_IsSaved(t *testing.T) {
	h, rs := newTestHandler()
	rs.Set("wishlist_index", "wishlist-session-1/3", &readmodel.WishlistIndexEntry{
		WishlistID: "wishlist-session-1",
		ProductID:  3,
	})

	assert.True(t, h.IsSaved("session-1", 3))
	assert.False(t, h.IsSaved("session-1", 4))
	assert.False(t, h.IsSaved("session-2", 3))
}

// ============================================
// Order Tests
// ============================================

func TestHandler_ListOrdersBySession(t *testing.T) {
	h, rs := newTestHandler()
	now := time.Now()
	rs.Set("orders", "order-1", &readmodel.OrderReadModel{ID: "order-1", SessionID: "session-1", CreatedAt: now})
	rs.Set("orders", "order-2", &readmodel.OrderReadModel{ID: "order-2", SessionID: "session-2", CreatedAt: now.Add(time.Minute)})
	rs.Set("orders", "order-3", &readmodel.OrderReadModel{ID: "order-3", SessionID: "session-1", CreatedAt: now.Add(2 * time.Minute)})

	orders := h.ListOrdersBySession("session-1")

	require.Len(t, orders, 2)
	assert.Equal(t, "order-1", orders[0].ID)
	assert.Equal(t, "order-3", orders[1].ID)
}

func TestHandler_GetOrder_NotFound(t *testing.T) {
	h, _ := newTestHandler()

	_, ok := h.GetOrder("missing")
	assert.False(t, ok)
}
