package cart

import (
	"context"
	"errors"

	"github.com/vadimdav12/TestTGBOT/internal/domain"
)

var (
	ErrCartNotFound = errors.New("cart not found")
	ErrItemNotFound = errors.New("item not found in cart")
)

// CartRepository defines the interface for cart data operations.
// Consumers define this interface, not the MongoDB implementation.
type CartRepository interface {
	GetCart(ctx context.Context, userID int64) (*domain.Cart, error)
	UpsertCart(ctx context.Context, cart *domain.Cart) error
	RemoveItem(ctx context.Context, userID int64, productID int64) error
	SetPromoCode(ctx context.Context, userID int64, code string) error
	DeleteCart(ctx context.Context, userID int64) error
}
