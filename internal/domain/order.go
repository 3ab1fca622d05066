package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusCreated        OrderStatus = "created"
	OrderStatusPaymentPending OrderStatus = "payment_pending"
	OrderStatusPaid           OrderStatus = "paid"
	OrderStatusFulfilled      OrderStatus = "fulfilled"
	OrderStatusCancelled      OrderStatus = "cancelled"
	OrderStatusFailed         OrderStatus = "failed"
)

// transitions lists every legal status move. Statuses are append-only:
// nothing moves backwards out of paid, cancelled or fulfilled.
// A failed order may go back to payment_pending when a new payment
// session is created for it.
var transitions = map[OrderStatus][]OrderStatus{
	OrderStatusCreated:        {OrderStatusPaymentPending, OrderStatusCancelled},
	OrderStatusPaymentPending: {OrderStatusPaid, OrderStatusFailed},
	OrderStatusPaid:           {OrderStatusFulfilled},
	OrderStatusFailed:         {OrderStatusPaymentPending},
}

func CanTransitionTo(from, to OrderStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusFulfilled || s == OrderStatusCancelled
}

func (s OrderStatus) String() string {
	return string(s)
}

// ParseOrderStatus maps an externally supplied status string onto a known
// status. Unknown values return false instead of an error so callers on
// external-facing paths can reject them without surfacing internals.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusCreated, OrderStatusPaymentPending, OrderStatusPaid,
		OrderStatusFulfilled, OrderStatusCancelled, OrderStatusFailed:
		return OrderStatus(s), true
	}
	return "", false
}

// OrderItem is an immutable snapshot of a cart line at order creation time.
type OrderItem struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

type ContactData struct {
	Name    string `validate:"required,min=1,max=128"`
	Phone   string `validate:"required,phone"`
	Address string `validate:"required,min=5,max=512"`
}

type Order struct {
	ID               int64
	UserID           int64
	Items            []OrderItem
	Contact          ContactData
	Subtotal         decimal.Decimal
	PromoCode        string
	PromoDiscount    decimal.Decimal
	RuleDiscount     decimal.Decimal
	Total            decimal.Decimal
	Status           OrderStatus
	PaymentSessionID string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
