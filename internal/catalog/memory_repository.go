package catalog

import (
	"context"
	"sync"

	"github.com/vadimdav12/TestTGBOT/internal/domain"
)

// MemoryProductRepository is an in-memory ProductRepository for tests and
// local development.
type MemoryProductRepository struct {
	mu         sync.RWMutex
	categories []domain.Category
	products   map[int64]*domain.Product
	nextID     int64
}

func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[int64]*domain.Product),
		nextID:   1,
	}
}

func (r *MemoryProductRepository) PutCategory(category domain.Category) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories = append(r.categories, category)
}

func (r *MemoryProductRepository) GetCategories(_ context.Context) ([]domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Category, len(r.categories))
	copy(out, r.categories)
	return out, nil
}

func (r *MemoryProductRepository) GetProductsByCategory(_ context.Context, categoryID int64) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Product
	for _, p := range r.products {
		if p.CategoryID == categoryID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *MemoryProductRepository) GetProduct(_ context.Context, productID int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.products[productID]
	if !exists {
		return nil, domain.ErrProductNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *MemoryProductRepository) ListProducts(_ context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *MemoryProductRepository) CreateProduct(_ context.Context, product *domain.Product) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = r.nextID
	r.nextID++
	copied := *product
	r.products[product.ID] = &copied
	return product.ID, nil
}

func (r *MemoryProductRepository) UpdateProduct(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[product.ID]; !exists {
		return domain.ErrProductNotFound
	}
	copied := *product
	r.products[product.ID] = &copied
	return nil
}
