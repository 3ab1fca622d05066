package search

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadimdav12/TestTGBOT/internal/catalog"
	"github.com/vadimdav12/TestTGBOT/internal/domain"
)

func seedProducts(t *testing.T) *catalog.MemoryProductRepository {
	t.Helper()

	repo := catalog.NewMemoryProductRepository()
	ctx := context.Background()

	products := []domain.Product{
		{Name: "Samsung Galaxy S24", Price: decimal.NewFromInt(79990), CategoryID: 1, IsActive: true},
		{Name: "iPhone 15", Price: decimal.NewFromInt(99990), CategoryID: 1, IsActive: true},
		{Name: "Чехол для Samsung", Price: decimal.NewFromInt(990), CategoryID: 2, IsActive: true},
		{Name: "Samsung TV", Price: decimal.NewFromInt(49990), CategoryID: 3, IsActive: false},
	}
	for i := range products {
		_, err := repo.CreateProduct(ctx, &products[i])
		require.NoError(t, err)
	}
	return repo
}

func TestService_SearchProducts_CyrillicQuery(t *testing.T) {
	svc := NewService(seedProducts(t))

	results, err := svc.SearchProducts(context.Background(), "самсунг")
	require.NoError(t, err)

	require.Len(t, results, 2)
	for _, p := range results {
		assert.Contains(t, p.Name, "Samsung")
	}
}

func TestService_SearchProducts_LatinQuery(t *testing.T) {
	svc := NewService(seedProducts(t))

	results, err := svc.SearchProducts(context.Background(), "iphone")
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "iPhone 15", results[0].Name)
}

func TestService_SearchProducts_LatinQueryMatchesCyrillicName(t *testing.T) {
	svc := NewService(seedProducts(t))

	results, err := svc.SearchProducts(context.Background(), "chehol")
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "Чехол для Samsung", results[0].Name)
}

func TestService_SearchProducts_SkipsInactive(t *testing.T) {
	svc := NewService(seedProducts(t))

	results, err := svc.SearchProducts(context.Background(), "tv")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestService_SearchProducts_EmptyQuery(t *testing.T) {
	svc := NewService(seedProducts(t))

	results, err := svc.SearchProducts(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestService_SearchProducts_NoMatch(t *testing.T) {
	svc := NewService(seedProducts(t))

	results, err := svc.SearchProducts(context.Background(), "ноутбук")
	require.NoError(t, err)
	assert.Empty(t, results)
}
