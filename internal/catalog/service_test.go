package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadimdav12/TestTGBOT/internal/domain"
	"github.com/vadimdav12/TestTGBOT/internal/stock"
)

func setupService(t *testing.T) (*Service, *MemoryProductRepository, *stock.MemoryLedger) {
	t.Helper()
	repo := NewMemoryProductRepository()
	ledger := stock.NewMemoryLedger()
	return NewService(repo, ledger), repo, ledger
}

func TestService_CategoryNavigation(t *testing.T) {
	svc, repo, _ := setupService(t)
	ctx := context.Background()

	repo.PutCategory(domain.Category{ID: 1, Name: "Smartphones"})
	repo.PutCategory(domain.Category{ID: 2, Name: "Laptops"})

	for i := 0; i < 3; i++ {
		_, err := svc.CreateProduct(ctx, &domain.Product{
			Name:       "Phone",
			Price:      decimal.NewFromInt(10000),
			Stock:      5,
			CategoryID: 1,
			IsActive:   true,
		})
		require.NoError(t, err)
	}

	categories, err := svc.GetCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 2)

	products, err := svc.GetProductsByCategory(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, products, 3)
	for _, p := range products {
		assert.Equal(t, int64(1), p.CategoryID)
	}
}

func TestService_ProductDetailsWithStock(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, &domain.Product{
		Name:       "Samsung",
		Price:      decimal.NewFromInt(79990),
		Stock:      10,
		CategoryID: 1,
		IsActive:   true,
	})
	require.NoError(t, err)

	product, err := svc.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Samsung", product.Name)

	available, err := svc.GetProductStock(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, available)
}

func TestService_GetProductStock_UnknownProduct(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.GetProductStock(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestService_CreateProduct_SeedsLedger(t *testing.T) {
	svc, _, ledger := setupService(t)

	created, err := svc.CreateProduct(context.Background(), &domain.Product{
		Name:       "New product",
		Price:      decimal.NewFromInt(99990),
		Stock:      50,
		CategoryID: 1,
		IsActive:   true,
	})
	require.NoError(t, err)

	assert.True(t, ledger.CheckAvailable(created.ID, 50))
	assert.False(t, ledger.CheckAvailable(created.ID, 51))
}

func TestService_SeedLedger(t *testing.T) {
	repo := NewMemoryProductRepository()
	ledger := stock.NewMemoryLedger()

	ctx := context.Background()
	id, err := repo.CreateProduct(ctx, &domain.Product{
		Name: "Seeded", Price: decimal.NewFromInt(100), Stock: 7, IsActive: true,
	})
	require.NoError(t, err)

	svc := NewService(repo, ledger)
	require.NoError(t, svc.SeedLedger(ctx))

	assert.Equal(t, 7, ledger.Available(id))
}
