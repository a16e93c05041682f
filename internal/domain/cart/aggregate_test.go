package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/furnishop/internal/infrastructure/store"
	"github.com/example/furnishop/internal/infrastructure/store/mocks"
)

func newTestCartService() (*Service, *mocks.MockEventStore) {
	eventStore := mocks.NewMockEventStore()
	service := NewService(eventStore)
	return service, eventStore
}

// ============================================
// CartID Tests
// ============================================

func TestCartID(t *testing.T) {
	tests := []struct {
		name       string
		sessionID  string
		expectedID string
	}{
		{"plain session", "sess-123", "cart-sess-123"},
		{"uuid session", "550e8400-e29b-41d4-a716-446655440000", "cart-550e8400-e29b-41d4-a716-446655440000"},
		{"guest fallback", "guest", "cart-guest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedID, CartID(tt.sessionID))
		})
	}
}

// ============================================
// AddItem Tests
// ============================================

func TestService_AddItem_Success(t *testing.T) {
	service, eventStore := newTestCartService()
	ctx := context.Background()

	err := service.AddItem(ctx, "sess-1", 42, 2, 1000)

	require.NoError(t, err)
	require.Len(t, eventStore.AppendCalls, 1)
	assert.Equal(t, EventItemAdded, eventStore.AppendCalls[0].EventType)
	assert.Equal(t, AggregateType, eventStore.AppendCalls[0].AggregateType)
	assert.Equal(t, "cart-sess-1", eventStore.AppendCalls[0].AggregateID)

	data := eventStore.AppendCalls[0].Data.(ItemAddedToCart)
	assert.Equal(t, int64(42), data.ProductID)
	assert.Equal(t, 2, data.Quantity)
	assert.Equal(t, int64(1000), data.UnitPrice)
}

func TestService_AddItem_InvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		productID int64
		quantity  int
		wantErr   error
	}{
		{"zero product id", 0, 1, ErrInvalidProduct},
		{"negative product id", -3, 1, ErrInvalidProduct},
		{"zero quantity", 42, 0, ErrInvalidQuantity},
		{"negative quantity", 42, -1, ErrInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, eventStore := newTestCartService()

			err := service.AddItem(context.Background(), "sess-1", tt.productID, tt.quantity, 100)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, eventStore.AppendCalls)
		})
	}
}

func TestService_AddItem_FreeItemAllowed(t *testing.T) {
	service, _ := newTestCartService()

	err := service.AddItem(context.Background(), "sess-1", 42, 1, 0)

	require.NoError(t, err)
}

// ============================================
// SetQuantity Tests
// ============================================

func TestService_SetQuantity_EmitsQuantitySet(t *testing.T) {
	service, eventStore := newTestCartService()

	err := service.SetQuantity(context.Background(), "sess-1", 42, 5)

	require.NoError(t, err)
	require.Len(t, eventStore.AppendCalls, 1)
	assert.Equal(t, EventQuantitySet, eventStore.AppendCalls[0].EventType)

	data := eventStore.AppendCalls[0].Data.(CartItemQuantitySet)
	assert.Equal(t, 5, data.Quantity)
}

func TestService_SetQuantity_NonPositiveBecomesRemoval(t *testing.T) {
	for _, quantity := range []int{0, -2} {
		service, eventStore := newTestCartService()

		err := service.SetQuantity(context.Background(), "sess-1", 42, quantity)

		require.NoError(t, err)
		require.Len(t, eventStore.AppendCalls, 1)
		assert.Equal(t, EventItemRemoved, eventStore.AppendCalls[0].EventType)
	}
}

// ============================================
// RemoveItem / Clear Tests
// ============================================

func TestService_RemoveItem_Success(t *testing.T) {
	service, eventStore := newTestCartService()

	err := service.RemoveItem(context.Background(), "sess-1", 42)

	require.NoError(t, err)
	require.Len(t, eventStore.AppendCalls, 1)
	assert.Equal(t, EventItemRemoved, eventStore.AppendCalls[0].EventType)
}

func TestService_RemoveItem_InvalidProduct(t *testing.T) {
	service, eventStore := newTestCartService()

	err := service.RemoveItem(context.Background(), "sess-1", 0)

	assert.ErrorIs(t, err, ErrInvalidProduct)
	assert.Empty(t, eventStore.AppendCalls)
}

func TestService_Clear_EmptyCartStillSucceeds(t *testing.T) {
	service, eventStore := newTestCartService()

	err := service.Clear(context.Background(), "sess-1")

	require.NoError(t, err)
	require.Len(t, eventStore.AppendCalls, 1)
	assert.Equal(t, EventCartCleared, eventStore.AppendCalls[0].EventType)
}

// ============================================
// Replay Tests
// ============================================

func replayCart(t *testing.T, events []store.Event) *Cart {
	t.Helper()
	cart := &Cart{Items: make(map[int64]CartItem)}
	for _, event := range events {
		require.NoError(t, cart.ApplyEvent(event))
	}
	return cart
}

func TestCartReplay_MergesDuplicateAdds(t *testing.T) {
	service, eventStore := newTestCartService()
	ctx := context.Background()

	require.NoError(t, service.AddItem(ctx, "sess-1", 42, 2, 1000))
	require.NoError(t, service.AddItem(ctx, "sess-1", 42, 3, 1000))

	cart := replayCart(t, eventStore.GetEvents("cart-sess-1"))

	require.Len(t, cart.Items, 1, "one line per product id")
	assert.Equal(t, 5, cart.Items[42].Quantity)
}

func TestCartReplay_QuantitySetIsExact(t *testing.T) {
	service, eventStore := newTestCartService()
	ctx := context.Background()

	require.NoError(t, service.AddItem(ctx, "sess-1", 42, 2, 1000))
	require.NoError(t, service.SetQuantity(ctx, "sess-1", 42, 7))

	cart := replayCart(t, eventStore.GetEvents("cart-sess-1"))

	assert.Equal(t, 7, cart.Items[42].Quantity)
}

func TestCartReplay_QuantitySetOnAbsentLineIsNoop(t *testing.T) {
	service, eventStore := newTestCartService()
	ctx := context.Background()

	require.NoError(t, service.SetQuantity(ctx, "sess-1", 99, 3))

	cart := replayCart(t, eventStore.GetEvents("cart-sess-1"))

	assert.Empty(t, cart.Items)
}

func TestCartReplay_FullSequence(t *testing.T) {
	service, eventStore := newTestCartService()
	ctx := context.Background()

	require.NoError(t, service.AddItem(ctx, "sess-1", 1, 2, 1000))
	require.NoError(t, service.AddItem(ctx, "sess-1", 2, 1, 2000))
	require.NoError(t, service.RemoveItem(ctx, "sess-1", 1))
	require.NoError(t, service.Clear(ctx, "sess-1"))

	require.Len(t, eventStore.AppendCalls, 4)
	cart := replayCart(t, eventStore.GetEvents("cart-sess-1"))
	assert.Empty(t, cart.Items)
	assert.Equal(t, 4, cart.Version)
}
