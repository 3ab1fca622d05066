package receipt

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadimdav12/TestTGBOT/internal/domain"
)

func TestPDFGenerator_Generate(t *testing.T) {
	gen, err := NewPDFGenerator(t.TempDir())
	require.NoError(t, err)

	order := &domain.Order{
		ID:     2,
		UserID: 1,
		Contact: domain.ContactData{
			Name:    "Test",
			Phone:   "+7 999 111-11-11",
			Address: "Moscow, Testovaya st. 1",
		},
		Subtotal:      decimal.NewFromInt(79990),
		PromoCode:     "SAVE10",
		PromoDiscount: decimal.NewFromInt(7999),
		Total:         decimal.NewFromInt(71991),
		Status:        domain.OrderStatusPaid,
		CreatedAt:     time.Now(),
	}
	items := []domain.OrderItem{
		{ProductID: 3, Name: "Samsung", Price: decimal.NewFromInt(79990), Quantity: 1},
	}

	path, err := gen.Generate(context.Background(), order, items)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
