package product

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/skillsenselab/secureapi/errors"
	"github.com/skillsenselab/secureapi/logger"
)

type fakeStore struct {
	products map[uuid.UUID]Product
}

func newFakeStore() *fakeStore {
	return &fakeStore{products: make(map[uuid.UUID]Product)}
}

func (f *fakeStore) FindAll(context.Context) ([]Product, error) {
	out := make([]Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeStore) FindByID(_ context.Context, id uuid.UUID) (*Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, errors.NotFound("product", id.String())
	}
	return &p, nil
}

func (f *fakeStore) Create(_ context.Context, p *Product) (*Product, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	f.products[p.ID] = *p
	return p, nil
}

func (f *fakeStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.products[id]; !ok {
		return errors.NotFound("product", id.String())
	}
	delete(f.products, id)
	return nil
}

func newTestService() (*Service, *fakeStore) {
	store := newFakeStore()
	return NewService(store, logger.NewDefault("test")), store
}

func TestService_Create(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), &Product{
		Name:  "Widget",
		Price: 9.99,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("Create() did not assign an ID")
	}

	products, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("List() returned %d products, want 1", len(products))
	}
}

func TestService_Create_Invalid(t *testing.T) {
	svc, store := newTestService()

	tests := []struct {
		name     string
		product  Product
		wantCode errors.ErrorCode
	}{
		{"missing name", Product{Price: 1}, errors.ErrCodeMissingField},
		{"zero price", Product{Name: "Free", Price: 0}, errors.ErrCodeInvalidInput},
		{"negative price", Product{Name: "Refund", Price: -5}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), &tt.product)
			if !errors.IsCode(err, tt.wantCode) {
				t.Errorf("Create() error = %v, want code %s", err, tt.wantCode)
			}
		})
	}

	if len(store.products) != 0 {
		t.Errorf("invalid products were persisted: %d", len(store.products))
	}
}

func TestService_Delete(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), &Product{Name: "Widget", Price: 1})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); !errors.IsCode(err, errors.ErrCodeNotFound) {
		t.Errorf("Delete() twice: error = %v, want NOT_FOUND", err)
	}
}
