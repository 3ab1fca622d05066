package order

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadimdav12/TestTGBOT/internal/domain"
)

func sampleOrder(userID int64) *domain.Order {
	return &domain.Order{
		UserID: userID,
		Items: []domain.OrderItem{
			{ProductID: 3, Name: "Samsung", Price: decimal.NewFromInt(79990), Quantity: 1},
		},
		Contact: domain.ContactData{
			Name:    "Test",
			Phone:   "+7 999 111-11-11",
			Address: "Moscow, Testovaya st. 1",
		},
		Subtotal:      decimal.NewFromInt(79990),
		PromoDiscount: decimal.NewFromInt(7999),
		RuleDiscount:  decimal.Zero,
		Total:         decimal.NewFromInt(71991),
		PromoCode:     "SAVE10",
		Status:        domain.OrderStatusCreated,
	}
}

func TestMemoryRepository_CreateAndGet(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	id, err := repo.CreateOrder(ctx, sampleOrder(1))
	require.NoError(t, err)
	require.NotZero(t, id)

	got, err := repo.GetOrder(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCreated, got.Status)
	assert.True(t, got.Total.Equal(decimal.NewFromInt(71991)))
	assert.Len(t, got.Items, 1)
}

func TestMemoryRepository_GetOrder_NotFound(t *testing.T) {
	repo := NewMemoryRepository()

	_, err := repo.GetOrder(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestMemoryRepository_UpdateStatus(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	id, err := repo.CreateOrder(ctx, sampleOrder(1))
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(ctx, id, domain.OrderStatusPaymentPending))

	got, err := repo.GetOrder(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPaymentPending, got.Status)
}

func TestMemoryRepository_SetPaymentSession(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	id, err := repo.CreateOrder(ctx, sampleOrder(1))
	require.NoError(t, err)

	require.NoError(t, repo.SetPaymentSession(ctx, id, "sess_123"))

	got, err := repo.GetOrder(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "sess_123", got.PaymentSessionID)
}

func TestMemoryRepository_ListOrdersByUser(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, err := repo.CreateOrder(ctx, sampleOrder(1))
	require.NoError(t, err)
	_, err = repo.CreateOrder(ctx, sampleOrder(1))
	require.NoError(t, err)
	_, err = repo.CreateOrder(ctx, sampleOrder(2))
	require.NoError(t, err)

	orders, err := repo.ListOrdersByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestMemoryRepository_StoredOrderIsImmutableFromOutside(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	id, err := repo.CreateOrder(ctx, sampleOrder(1))
	require.NoError(t, err)

	got, err := repo.GetOrder(ctx, id)
	require.NoError(t, err)
	got.Items[0].Quantity = 99

	again, err := repo.GetOrder(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, again.Items[0].Quantity)
}
