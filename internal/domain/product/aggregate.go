package product

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/furnishop/internal/catalog"
	"github.com/example/furnishop/internal/infrastructure/store"
)

const AggregateType = "Product"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidID       = errors.New("product id must be positive")
	ErrInvalidName     = errors.New("name is required")
)

// Service is the catalog's write side. Product IDs come from the catalog
// source, not from here: the seeder feeds fixture entries through Create so
// the read models are projections like everything else.
type Service struct {
	eventStore store.EventStoreInterface
}

func NewService(es store.EventStoreInterface) *Service {
	return &Service{eventStore: es}
}

// AggregateID returns the event-store key for a product
func AggregateID(productID int64) string {
	return fmt.Sprintf("product-%d", productID)
}

// Create registers a catalog product. The price must already be normalized
// (catalog.ParsePrice); negative values are rejected here as a backstop.
func (s *Service) Create(ctx context.Context, p catalog.Product) error {
	if p.ID <= 0 {
		return ErrInvalidID
	}
	if p.Name == "" {
		return ErrInvalidName
	}
	if p.Price < 0 {
		return catalog.ErrNegativePrice
	}

	now := time.Now()
	event := ProductCreated{
		ProductID:   p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Color:       p.Color,
		Material:    p.Material,
		Price:       p.Price,
		Image:       p.Image,
		Description: p.Description,
		CreatedAt:   now,
	}

	_, err := s.eventStore.Append(ctx, AggregateID(p.ID), AggregateType, EventProductCreated, event)
	return err
}

// Update replaces a product's attributes
func (s *Service) Update(ctx context.Context, p catalog.Product) error {
	if p.ID <= 0 {
		return ErrInvalidID
	}
	if p.Name == "" {
		return ErrInvalidName
	}
	if len(s.eventStore.GetEvents(AggregateID(p.ID))) == 0 {
		return ErrProductNotFound
	}

	event := ProductUpdated{
		ProductID:   p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Color:       p.Color,
		Material:    p.Material,
		Price:       p.Price,
		Image:       p.Image,
		Description: p.Description,
		UpdatedAt:   time.Now(),
	}

	_, err := s.eventStore.Append(ctx, AggregateID(p.ID), AggregateType, EventProductUpdated, event)
	return err
}

// Retire removes a product from the browsable catalog
func (s *Service) Retire(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return ErrInvalidID
	}
	if len(s.eventStore.GetEvents(AggregateID(productID))) == 0 {
		return ErrProductNotFound
	}

	event := ProductRetired{
		ProductID: productID,
		RetiredAt: time.Now(),
	}

	_, err := s.eventStore.Append(ctx, AggregateID(productID), AggregateType, EventProductRetired, event)
	return err
}
