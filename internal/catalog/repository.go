package catalog

import (
	"context"

	"github.com/vadimdav12/TestTGBOT/internal/domain"
)

// ProductRepository defines the interface for catalog data operations.
// Consumers define this interface, not the MongoDB implementation.
type ProductRepository interface {
	GetCategories(ctx context.Context) ([]domain.Category, error)
	GetProductsByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error)
	GetProduct(ctx context.Context, productID int64) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) (int64, error)
	UpdateProduct(ctx context.Context, product *domain.Product) error
}
