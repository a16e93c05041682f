package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/furnishop/internal/auth"
	"github.com/example/furnishop/internal/infrastructure/store"
	"github.com/example/furnishop/internal/infrastructure/store/mocks"
	"github.com/example/furnishop/internal/readmodel"
)

func newTestService() (*Service, *mocks.MockEventStore, *store.ReadStore) {
	es := mocks.NewMockEventStore()
	rs := store.NewReadStore()
	return NewService(es, rs), es, rs
}

func seedUser(t *testing.T, rs *store.ReadStore, email, password string) *readmodel.UserReadModel {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	u := &readmodel.UserReadModel{
		ID:           "user-1",
		Email:        email,
		PasswordHash: hash,
		Name:         "Test Shopper",
		CreatedAt:    time.Now(),
	}
	rs.Set("users", u.ID, u)
	return u
}

func TestService_Register_Success(t *testing.T) {
	svc, es, _ := newTestService()

	u, err := svc.Register(context.Background(), "shopper@example.com", "password123", "Shopper")

	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "shopper@example.com", u.Email)
	assert.NotEqual(t, "password123", u.PasswordHash)

	require.Len(t, es.AppendCalls, 1)
	assert.Equal(t, EventUserCreated, es.AppendCalls[0].EventType)
	assert.Equal(t, AggregateType, es.AppendCalls[0].AggregateType)
}

func TestService_Register_Validation(t *testing.T) {
	svc, es, _ := newTestService()

	_, err := svc.Register(context.Background(), "", "password123", "Shopper")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = svc.Register(context.Background(), "shopper@example.com", "password123", "")
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = svc.Register(context.Background(), "shopper@example.com", "short", "Shopper")
	assert.ErrorIs(t, err, auth.ErrPasswordTooShort)

	assert.Empty(t, es.AppendCalls)
}

func TestService_Register_EmailTaken(t *testing.T) {
	svc, es, rs := newTestService()
	seedUser(t, rs, "shopper@example.com", "password123")

	_, err := svc.Register(context.Background(), "shopper@example.com", "otherpassword", "Other")

	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Empty(t, es.AppendCalls)
}

func TestService_Authenticate(t *testing.T) {
	svc, _, rs := newTestService()
	seeded := seedUser(t, rs, "shopper@example.com", "password123")

	u, err := svc.Authenticate(context.Background(), "shopper@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, u.ID)

	_, err = svc.Authenticate(context.Background(), "shopper@example.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
