package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/example/furnishop/internal/auth"
	"github.com/example/furnishop/internal/infrastructure/store"
	"github.com/example/furnishop/internal/readmodel"
)

const AggregateType = "User"

var (
	ErrInvalidEmail       = errors.New("email is required")
	ErrInvalidName        = errors.New("name is required")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// User represents a registered shopper. Accounts are simulated the way the
// storefront's signup modal was: in-memory only, gone on restart.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
}

// Service handles the simulated signup/login write side. It reads the user
// read models directly because email lookup is a query concern the event
// store cannot answer.
type Service struct {
	eventStore store.EventStoreInterface
	readStore  store.ReadStoreInterface
}

func NewService(es store.EventStoreInterface, rs store.ReadStoreInterface) *Service {
	return &Service{eventStore: es, readStore: rs}
}

func (s *Service) findByEmail(email string) (*readmodel.UserReadModel, bool) {
	for _, item := range s.readStore.GetAll("users") {
		u := item.(*readmodel.UserReadModel)
		if u.Email == email {
			return u, true
		}
	}
	return nil, false
}

// Register creates a new shopper account
func (s *Service) Register(ctx context.Context, email, password, name string) (*User, error) {
	if email == "" {
		return nil, ErrInvalidEmail
	}
	if name == "" {
		return nil, ErrInvalidName
	}
	if _, exists := s.findByEmail(email); exists {
		return nil, ErrEmailTaken
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	userID := uuid.New().String()
	now := time.Now()

	event := UserCreated{
		UserID:       userID,
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		CreatedAt:    now,
	}

	if _, err := s.eventStore.Append(ctx, userID, AggregateType, EventUserCreated, event); err != nil {
		return nil, err
	}

	return &User{
		ID:           userID,
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		CreatedAt:    now,
	}, nil
}

// Authenticate checks credentials against the read model. The same error
// covers unknown email and wrong password.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*readmodel.UserReadModel, error) {
	u, ok := s.findByEmail(email)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if !auth.CheckPassword(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}
