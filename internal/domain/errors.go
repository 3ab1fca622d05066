package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrOrderNotFound     = errors.New("order not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrInvalidOrderState = errors.New("invalid order state for this operation")
	ErrPaymentGateway    = errors.New("payment gateway request failed")
)

// InsufficientStockError reports how many units were actually available at
// the moment the reservation was refused, for user-facing messaging.
type InsufficientStockError struct {
	ProductID int64
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: %d available", e.ProductID, e.Available)
}
