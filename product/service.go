package product

import (
	"context"

	"github.com/google/uuid"

	"github.com/skillsenselab/secureapi/errors"
	"github.com/skillsenselab/secureapi/logger"
)

// Service implements catalog operations on top of a Store.
type Service struct {
	store Store
	log   *logger.Logger
}

// NewService creates a product service.
func NewService(store Store, log *logger.Logger) *Service {
	return &Service{
		store: store,
		log:   log.WithComponent("product"),
	}
}

// List returns all products.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.store.FindAll(ctx)
}

// Create validates and persists a new product. Prices must be strictly
// positive; zero-priced entries are catalog mistakes, not free products.
func (s *Service) Create(ctx context.Context, p *Product) (*Product, error) {
	if p.Name == "" {
		return nil, errors.MissingField("name")
	}
	if p.Price <= 0 {
		return nil, errors.InvalidInput("price", "must be greater than zero")
	}

	created, err := s.store.Create(ctx, p)
	if err != nil {
		return nil, err
	}

	s.log.Info("Product created", logger.Fields(
		"product_id", created.ID.String(),
		"name", created.Name,
	))
	return created, nil
}

// Delete removes a product by ID.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("Product deleted", logger.Fields("product_id", id.String()))
	return nil
}
