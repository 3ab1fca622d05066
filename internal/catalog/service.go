package catalog

import (
	"context"
	"fmt"

	"github.com/vadimdav12/TestTGBOT/internal/domain"
	"github.com/vadimdav12/TestTGBOT/internal/stock"
)

// Service exposes catalog browsing and admin product management. Stock
// levels are read from the ledger, which owns all stock state; the stock
// field on a product record is only the seed value.
type Service struct {
	repo   ProductRepository
	ledger stock.Ledger
}

func NewService(repo ProductRepository, ledger stock.Ledger) *Service {
	return &Service{repo: repo, ledger: ledger}
}

func (s *Service) GetCategories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.GetCategories(ctx)
}

func (s *Service) GetProductsByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	return s.repo.GetProductsByCategory(ctx, categoryID)
}

func (s *Service) GetProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	return s.repo.GetProduct(ctx, productID)
}

func (s *Service) GetProductStock(ctx context.Context, productID int64) (int, error) {
	if _, err := s.repo.GetProduct(ctx, productID); err != nil {
		return 0, err
	}
	return s.ledger.Available(productID), nil
}

// CreateProduct persists a new product and seeds the stock ledger with its
// initial quantity.
func (s *Service) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	id, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.ledger.SetStock(id, product.Stock, product.IsActive)
	return product, nil
}

func (s *Service) UpdateProduct(ctx context.Context, product *domain.Product) error {
	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return err
	}

	s.ledger.SetStock(product.ID, product.Stock, product.IsActive)
	return nil
}

// SeedLedger loads every product record into the stock ledger. Called once
// at startup, before any checkout can run.
func (s *Service) SeedLedger(ctx context.Context) error {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed stock ledger: %w", err)
	}
	for _, p := range products {
		s.ledger.SetStock(p.ID, p.Stock, p.IsActive)
	}
	return nil
}
