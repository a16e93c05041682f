package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/furnishop/internal/infrastructure/store/mocks"
)

func newTestOrderService() (*Service, *mocks.MockEventStore) {
	eventStore := mocks.NewMockEventStore()
	return NewService(eventStore), eventStore
}

func sampleItems() []OrderItem {
	return []OrderItem{
		{ProductID: 1, Name: "Oak Table", Quantity: 2, UnitPrice: 2500},
		{ProductID: 2, Name: "Steel Lamp", Quantity: 1, UnitPrice: 450},
	}
}

// ============================================
// Place Tests
// ============================================

func TestService_Place_Success(t *testing.T) {
	service, eventStore := newTestOrderService()

	order, err := service.Place(context.Background(), "sess-1", sampleItems())

	require.NoError(t, err)
	assert.Equal(t, StatusPending, order.Status)
	assert.Equal(t, int64(2*2500+450), order.Total, "total derived from items")
	require.Len(t, eventStore.AppendCalls, 1)
	assert.Equal(t, EventOrderPlaced, eventStore.AppendCalls[0].EventType)
}

func TestService_Place_EmptyCart(t *testing.T) {
	service, eventStore := newTestOrderService()

	_, err := service.Place(context.Background(), "sess-1", nil)

	assert.ErrorIs(t, err, ErrEmptyOrder)
	assert.Empty(t, eventStore.AppendCalls)
}

// ============================================
// Cancel Tests
// ============================================

func TestService_Cancel_Success(t *testing.T) {
	service, eventStore := newTestOrderService()
	ctx := context.Background()

	order, err := service.Place(ctx, "sess-1", sampleItems())
	require.NoError(t, err)

	require.NoError(t, service.Cancel(ctx, order.ID, "changed my mind"))

	last := eventStore.AppendCalls[len(eventStore.AppendCalls)-1]
	assert.Equal(t, EventOrderCancelled, last.EventType)
	assert.Equal(t, "changed my mind", last.Data.(OrderCancelled).Reason)
}

func TestService_Cancel_UnknownOrder(t *testing.T) {
	service, _ := newTestOrderService()

	err := service.Cancel(context.Background(), "missing", "")

	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestService_Cancel_AlreadyCancelled(t *testing.T) {
	service, _ := newTestOrderService()
	ctx := context.Background()

	order, err := service.Place(ctx, "sess-1", sampleItems())
	require.NoError(t, err)
	require.NoError(t, service.Cancel(ctx, order.ID, "first"))

	err = service.Cancel(ctx, order.ID, "second")

	assert.ErrorIs(t, err, ErrOrderCancelled)
}
