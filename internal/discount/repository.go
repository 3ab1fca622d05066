package discount

import (
	"context"
	"errors"

	"github.com/vadimdav12/TestTGBOT/internal/domain"
)

var ErrPromoNotFound = errors.New("promo code not found")

// PromoRepository looks up promo codes. Lookups are case-insensitive.
type PromoRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.PromoCode, error)
}
