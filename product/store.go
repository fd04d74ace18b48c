package product

import (
	"context"

	"github.com/google/uuid"
)

// Store is the persistence interface for the product catalog.
type Store interface {
	// FindAll returns every product, newest first.
	FindAll(ctx context.Context) ([]Product, error)

	// FindByID returns the product with the given ID, or a NOT_FOUND error.
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// Create persists a new product.
	Create(ctx context.Context, p *Product) (*Product, error)

	// Delete removes the product with the given ID. Deleting a product that
	// does not exist yields a NOT_FOUND error.
	Delete(ctx context.Context, id uuid.UUID) error
}
