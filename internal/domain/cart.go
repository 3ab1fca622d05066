package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem captures the product name and unit price at the moment the item
// was added. Totals are computed from these captured values, not from the
// current catalog price.
type CartItem struct {
	ProductID int64
	Name      string
	Price     decimal.Decimal
	Quantity  int
	AddedAt   time.Time
}

type Cart struct {
	UserID    int64
	Items     []CartItem
	PromoCode string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Subtotal sums captured price * quantity over all items.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
