package command

import (
	"context"
	"strconv"

	"github.com/example/furnishop/internal/domain/cart"
	"github.com/example/furnishop/internal/domain/order"
	"github.com/example/furnishop/internal/domain/product"
	"github.com/example/furnishop/internal/domain/wishlist"
	"github.com/example/furnishop/internal/infrastructure/store"
	"github.com/example/furnishop/internal/readmodel"
)

type Handler struct {
	productSvc  *product.Service
	cartSvc     *cart.Service
	wishlistSvc *wishlist.Service
	orderSvc    *order.Service
	readStore   store.ReadStoreInterface
}

func NewHandler(
	productSvc *product.Service,
	cartSvc *cart.Service,
	wishlistSvc *wishlist.Service,
	orderSvc *order.Service,
	readStore store.ReadStoreInterface,
) *Handler {
	return &Handler{
		productSvc:  productSvc,
		cartSvc:     cartSvc,
		wishlistSvc: wishlistSvc,
		orderSvc:    orderSvc,
		readStore:   readStore,
	}
}

func (h *Handler) liveProduct(productID int64) (*readmodel.ProductReadModel, bool) {
	data, ok := h.readStore.Get("products", strconv.FormatInt(productID, 10))
	if !ok {
		return nil, false
	}
	prod := data.(*readmodel.ProductReadModel)
	if prod.Retired {
		return nil, false
	}
	return prod, true
}

// Product Commands

func (h *Handler) CreateProduct(ctx context.Context, cmd CreateProduct) error {
	return h.productSvc.Create(ctx, cmd.Product)
}

func (h *Handler) UpdateProduct(ctx context.Context, cmd UpdateProduct) error {
	return h.productSvc.Update(ctx, cmd.Product)
}

func (h *Handler) RetireProduct(ctx context.Context, cmd RetireProduct) error {
	return h.productSvc.Retire(ctx, cmd.ProductID)
}

// Cart Commands

// AddToCart snapshots the product's current price into the cart line, so a
// later catalog price change does not touch carts already holding the item.
func (h *Handler) AddToCart(ctx context.Context, cmd AddToCart) error {
	prod, ok := h.liveProduct(cmd.ProductID)
	if !ok {
		return product.ErrProductNotFound
	}

	quantity := cmd.Quantity
	if quantity < 1 {
		quantity = 1
	}

	return h.cartSvc.AddItem(ctx, cmd.SessionID, cmd.ProductID, quantity, prod.Price)
}

func (h *Handler) SetCartQuantity(ctx context.Context, cmd SetCartQuantity) error {
	return h.cartSvc.SetQuantity(ctx, cmd.SessionID, cmd.ProductID, cmd.Quantity)
}

func (h *Handler) RemoveFromCart(ctx context.Context, cmd RemoveFromCart) error {
	return h.cartSvc.RemoveItem(ctx, cmd.SessionID, cmd.ProductID)
}

func (h *Handler) ClearCart(ctx context.Context, cmd ClearCart) error {
	return h.cartSvc.Clear(ctx, cmd.SessionID)
}

// Wishlist Commands

func (h *Handler) SaveToWishlist(ctx context.Context, cmd SaveToWishlist) error {
	if _, ok := h.liveProduct(cmd.ProductID); !ok {
		return product.ErrProductNotFound
	}
	return h.wishlistSvc.Save(ctx, cmd.SessionID, cmd.ProductID)
}

func (h *Handler) RemoveFromWishlist(ctx context.Context, cmd RemoveFromWishlist) error {
	return h.wishlistSvc.Unsave(ctx, cmd.SessionID, cmd.ProductID)
}

func (h *Handler) ClearWishlist(ctx context.Context, cmd ClearWishlist) error {
	return h.wishlistSvc.Clear(ctx, cmd.SessionID)
}

// Order Commands

// PlaceOrder turns the session's cart into an order and clears the cart
func (h *Handler) PlaceOrder(ctx context.Context, cmd PlaceOrder) (*order.Order, error) {
	cartID := cart.CartID(cmd.SessionID)
	data, ok := h.readStore.Get("carts", cartID)
	if !ok {
		return nil, order.ErrEmptyOrder
	}
	cartModel := data.(*readmodel.CartReadModel)
	if len(cartModel.Items) == 0 {
		return nil, order.ErrEmptyOrder
	}

	items := make([]order.OrderItem, len(cartModel.Items))
	for i, item := range cartModel.Items {
		items[i] = order.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}

	o, err := h.orderSvc.Place(ctx, cmd.SessionID, items)
	if err != nil {
		return nil, err
	}

	if err := h.cartSvc.Clear(ctx, cmd.SessionID); err != nil {
		return nil, err
	}

	return o, nil
}

func (h *Handler) CancelOrder(ctx context.Context, cmd CancelOrder) error {
	return h.orderSvc.Cancel(ctx, cmd.OrderID, cmd.Reason)
}
