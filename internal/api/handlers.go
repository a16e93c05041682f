package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/example/furnishop/internal/api/middleware"
	"github.com/example/furnishop/internal/browse"
	"github.com/example/furnishop/internal/command"
	"github.com/example/furnishop/internal/domain/cart"
	"github.com/example/furnishop/internal/domain/order"
	"github.com/example/furnishop/internal/domain/product"
	"github.com/example/furnishop/internal/domain/wishlist"
	"github.com/example/furnishop/internal/query"
)

type Handlers struct {
	cmdHandler   *command.Handler
	queryHandler *query.Handler
}

func NewHandlers(cmdHandler *command.Handler, queryHandler *query.Handler) *Handlers {
	return &Handlers{
		cmdHandler:   cmdHandler,
		queryHandler: queryHandler,
	}
}

// Product Handlers

// BrowseProducts serves the storefront listing. Filter dimensions arrive as
// repeatable query params, price bounds as price_min/price_max, plus sort,
// page and page_size.
func (h *Handlers) BrowseProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	criteria := browse.Criteria{
		Categories: q["category"],
		Colors:     q["color"],
		Materials:  q["material"],
	}

	priceRange, err := parsePriceRange(q.Get("price_min"), q.Get("price_max"))
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	criteria.PriceRange = priceRange

	key, err := browse.ParseSortKey(q.Get("sort"))
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	page, err := parsePositiveInt(q.Get("page"), 1, "page")
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	pageSize, err := parsePositiveInt(q.Get("page_size"), 12, "page_size")
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result := h.queryHandler.BrowseProducts(criteria, key, page, pageSize)
	respondJSON(w, http.StatusOK, result)
}

func (h *Handlers) GetFacets(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.queryHandler.GetFacets())
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathProductID(r)
	if err != nil {
		respondJSONError(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	p, ok := h.queryHandler.GetProduct(id)
	if !ok {
		respondJSONError(w, "Product not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var cmd command.CreateProduct
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.cmdHandler.CreateProduct(r.Context(), cmd); err != nil {
		respondCommandError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"message": "Product created"})
}

func (h *Handlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathProductID(r)
	if err != nil {
		respondJSONError(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	var cmd command.UpdateProduct
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	cmd.Product.ID = id

	if err := h.cmdHandler.UpdateProduct(r.Context(), cmd); err != nil {
		respondCommandError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Product updated"})
}

func (h *Handlers) RetireProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathProductID(r)
	if err != nil {
		respondJSONError(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	if err := h.cmdHandler.RetireProduct(r.Context(), command.RetireProduct{ProductID: id}); err != nil {
		respondCommandError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Product retired"})
}

// Cart Handlers

func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())
	respondJSON(w, http.StatusOK, h.queryHandler.GetCart(sessionID))
}

func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())

	var req struct {
		ProductID int64 `json:"product_id"`
		Quantity  int   `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	cmd := command.AddToCart{
		SessionID: sessionID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}
	if err := h.cmdHandler.AddToCart(r.Context(), cmd); err != nil {
		respondCommandError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, h.queryHandler.GetCart(sessionID))
}

func (h *Handlers) SetCartQuantity(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())
	productID, err := pathProductID(r)
	if err != nil {
		respondJSONError(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	cmd := command.SetCartQuantity{
		SessionID: sessionID,
		ProductID: productID,
		Quantity:  req.Quantity,
	}
	if err := h.cmdHandler.SetCartQuantity(r.Context(), cmd); err != nil {
		respondCommandError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, h.queryHandler.GetCart(sessionID))
}

func (h *Handlers) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())
	productID, err := pathProductID(r)
	if err != nil {
		respondJSONError(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	cmd := command.RemoveFromCart{SessionID: sessionID, ProductID: productID}
	if err := h.cmdHandler.RemoveFromCart(r.Context(), cmd); err != nil {
		respondCommandError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, h.queryHandler.GetCart(sessionID))
}

func (h *Handlers) ClearCart(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())

	if err := h.cmdHandler.ClearCart(r.Context(), command.ClearCart{SessionID: sessionID}); err != nil {
		respondCommandError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, h.queryHandler.GetCart(sessionID))
}

// Wishlist Handlers

func (h *Handlers) GetWishlist(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())
	respondJSON(w, http.StatusOK, h.queryHandler.GetWishlist(sessionID))
}

func (h *Handlers) SaveToWishlist(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())

	var req struct {
		ProductID int64 `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	cmd := command.SaveToWishlist{SessionID: sessionID, ProductID: req.ProductID}
	if err := h.cmdHandler.SaveToWishlist(r.Context(), cmd); err != nil {
		respondCommandError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, h.queryHandler.GetWishlist(sessionID))
}

func (h *Handlers) IsSaved(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())
	productID, err := pathProductID(r)
	if err != nil {
		respondJSONError(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{
		"saved": h.queryHandler.IsSaved(sessionID, productID),
	})
}

func (h *Handlers) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())
	productID, err := pathProductID(r)
	if err != nil {
		respondJSONError(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	cmd := command.RemoveFromWishlist{SessionID: sessionID, ProductID: productID}
	if err := h.cmdHandler.RemoveFromWishlist(r.Context(), cmd); err != nil {
		respondCommandError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, h.queryHandler.GetWishlist(sessionID))
}

func (h *Handlers) ClearWishlist(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())

	if err := h.cmdHandler.ClearWishlist(r.Context(), command.ClearWishlist{SessionID: sessionID}); err != nil {
		respondCommandError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, h.queryHandler.GetWishlist(sessionID))
}

// Order Handlers

func (h *Handlers) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())

	o, err := h.cmdHandler.PlaceOrder(r.Context(), command.PlaceOrder{SessionID: sessionID})
	if err != nil {
		respondCommandError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, o)
}

func (h *Handlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())
	respondJSON(w, http.StatusOK, h.queryHandler.ListOrdersBySession(sessionID))
}

func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	o, ok := h.queryHandler.GetOrder(id)
	if !ok {
		respondJSONError(w, "Order not found", http.StatusNotFound)
		return
	}

	// Sessions only see their own orders
	if o.SessionID != middleware.GetSessionID(r.Context()) {
		respondJSONError(w, "Forbidden", http.StatusForbidden)
		return
	}

	respondJSON(w, http.StatusOK, o)
}

func (h *Handlers) CancelOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	o, ok := h.queryHandler.GetOrder(id)
	if !ok {
		respondJSONError(w, "Order not found", http.StatusNotFound)
		return
	}
	if o.SessionID != middleware.GetSessionID(r.Context()) {
		respondJSONError(w, "Forbidden", http.StatusForbidden)
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	cmd := command.CancelOrder{OrderID: id, Reason: req.Reason}
	if err := h.cmdHandler.CancelOrder(r.Context(), cmd); err != nil {
		respondCommandError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Order cancelled"})
}

// Notification Handlers

func (h *Handlers) ListNotifications(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())
	respondJSON(w, http.StatusOK, h.queryHandler.ListNotificationsBySession(sessionID))
}

// Helpers

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondJSONError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondCommandError maps domain sentinels onto HTTP status codes
func respondCommandError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, product.ErrProductNotFound), errors.Is(err, order.ErrOrderNotFound):
		respondJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, cart.ErrInvalidProduct), errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, wishlist.ErrInvalidProduct), errors.Is(err, order.ErrEmptyOrder),
		errors.Is(err, product.ErrInvalidID), errors.Is(err, product.ErrInvalidName):
		respondJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, order.ErrOrderCancelled):
		respondJSONError(w, err.Error(), http.StatusConflict)
	default:
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
	}
}

func pathProductID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func parsePositiveInt(raw string, fallback int, name string) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, errors.New(name + " must be a positive integer")
	}
	return n, nil
}

func parsePriceRange(rawMin, rawMax string) (*browse.PriceRange, error) {
	if rawMin == "" && rawMax == "" {
		return nil, nil
	}

	pr := &browse.PriceRange{}
	if rawMin != "" {
		min, err := strconv.ParseInt(rawMin, 10, 64)
		if err != nil {
			return nil, errors.New("price_min must be an integer")
		}
		pr.Min = &min
	}
	if rawMax != "" {
		max, err := strconv.ParseInt(rawMax, 10, 64)
		if err != nil {
			return nil, errors.New("price_max must be an integer")
		}
		pr.Max = &max
	}
	return pr, nil
}
