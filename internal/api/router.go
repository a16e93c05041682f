package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/example/furnishop/internal/api/middleware"
	"github.com/example/furnishop/internal/auth"
)

func NewRouter(handlers *Handlers, authHandlers *AuthHandlers, jwtService *auth.JWTService) http.Handler {
	r := mux.NewRouter()

	// Products
	r.HandleFunc("/products", handlers.BrowseProducts).Methods(http.MethodGet)
	r.HandleFunc("/products", handlers.CreateProduct).Methods(http.MethodPost)
	r.HandleFunc("/products/facets", handlers.GetFacets).Methods(http.MethodGet)
	r.HandleFunc("/products/{id}", handlers.GetProduct).Methods(http.MethodGet)
	r.HandleFunc("/products/{id}", handlers.UpdateProduct).Methods(http.MethodPut)
	r.HandleFunc("/products/{id}/retire", handlers.RetireProduct).Methods(http.MethodPost)

	// Cart
	r.HandleFunc("/cart", handlers.GetCart).Methods(http.MethodGet)
	r.HandleFunc("/cart", handlers.ClearCart).Methods(http.MethodDelete)
	r.HandleFunc("/cart/items", handlers.AddToCart).Methods(http.MethodPost)
	r.HandleFunc("/cart/items/{id}", handlers.SetCartQuantity).Methods(http.MethodPut)
	r.HandleFunc("/cart/items/{id}", handlers.RemoveFromCart).Methods(http.MethodDelete)

	// Wishlist
	r.HandleFunc("/wishlist", handlers.GetWishlist).Methods(http.MethodGet)
	r.HandleFunc("/wishlist", handlers.ClearWishlist).Methods(http.MethodDelete)
	r.HandleFunc("/wishlist/items", handlers.SaveToWishlist).Methods(http.MethodPost)
	r.HandleFunc("/wishlist/items/{id}", handlers.IsSaved).Methods(http.MethodGet)
	r.HandleFunc("/wishlist/items/{id}", handlers.RemoveFromWishlist).Methods(http.MethodDelete)

	// Orders
	r.HandleFunc("/orders", handlers.PlaceOrder).Methods(http.MethodPost)
	r.HandleFunc("/orders", handlers.ListOrders).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id}", handlers.GetOrder).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id}/cancel", handlers.CancelOrder).Methods(http.MethodPost)

	// Notifications
	r.HandleFunc("/notifications", handlers.ListNotifications).Methods(http.MethodGet)

	// Auth
	r.HandleFunc("/auth/signup", authHandlers.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", authHandlers.Login).Methods(http.MethodPost)
	r.HandleFunc("/auth/logout", authHandlers.Logout).Methods(http.MethodPost)
	r.HandleFunc("/auth/me", authHandlers.Me).Methods(http.MethodGet)

	r.Use(middleware.Logging)
	r.Use(middleware.SessionMiddleware(jwtService))

	return r
}
