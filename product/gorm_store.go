package product

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillsenselab/secureapi/database"
)

// GormStore persists products through the shared database handle.
type GormStore struct {
	db *database.DB
}

// NewGormStore creates a product store backed by the given database.
func NewGormStore(db *database.DB) *GormStore {
	return &GormStore{db: db}
}

// FindAll returns every product, newest first.
func (s *GormStore) FindAll(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, database.FromDatabase(err, "product")
	}
	return products, nil
}

// FindByID returns the product with the given ID.
func (s *GormStore) FindByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	var p Product
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, database.FromDatabase(err, "product")
	}
	return &p, nil
}

// Create persists a new product.
func (s *GormStore) Create(ctx context.Context, p *Product) (*Product, error) {
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, database.FromDatabase(err, "product")
	}
	return p, nil
}

// Delete removes the product with the given ID.
func (s *GormStore) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&Product{}, "id = ?", id)
	if res.Error != nil {
		return database.FromDatabase(res.Error, "product")
	}
	if res.RowsAffected == 0 {
		return database.FromDatabase(gorm.ErrRecordNotFound, "product")
	}
	return nil
}
