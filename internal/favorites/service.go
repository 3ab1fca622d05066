package favorites

import (
	"context"
	"fmt"

	"github.com/vadimdav12/TestTGBOT/internal/catalog"
	"github.com/vadimdav12/TestTGBOT/internal/domain"
)

// Service manages per-user favorite products. Listing resolves the
// stored product ids against the catalog and silently drops products
// that were removed or deactivated since they were favorited.
type Service struct {
	repo     Repository
	products catalog.ProductRepository
}

func NewService(repo Repository, products catalog.ProductRepository) *Service {
	return &Service{repo: repo, products: products}
}

func (s *Service) Add(ctx context.Context, userID, productID int64) error {
	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return err
	}
	if !product.IsActive {
		return domain.ErrProductNotFound
	}
	return s.repo.Add(ctx, userID, productID)
}

func (s *Service) Remove(ctx context.Context, userID, productID int64) error {
	return s.repo.Remove(ctx, userID, productID)
}

func (s *Service) List(ctx context.Context, userID int64) ([]domain.Product, error) {
	ids, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	var out []domain.Product
	for _, id := range ids {
		product, err := s.products.GetProduct(ctx, id)
		if err != nil {
			continue
		}
		if !product.IsActive {
			continue
		}
		out = append(out, *product)
	}
	return out, nil
}
