package discount

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vadimdav12/TestTGBOT/internal/domain"
)

// Rejection reasons returned by ValidatePromo and carried in
// DiscountResult.PromoRejection.
const (
	ReasonNotFound    = "promo code not found"
	ReasonInactive    = "promo code is not active"
	ReasonNotStarted  = "promo code is not yet valid"
	ReasonExpired     = "promo code has expired"
	ReasonMinSubtotal = "cart subtotal is below the promo code minimum"
)

const (
	// Lines with at least bulkQuantityThreshold units get an extra
	// bulkDiscountPercent off that line, additive with the promo discount.
	bulkQuantityThreshold = 10
	bulkDiscountPercent   = 5
)

// Engine evaluates promo codes and cart-level discount rules. It has no
// side effects: repeated calls for the same cart and the same now() value
// produce identical results, and concurrent use is safe.
type Engine struct {
	repo PromoRepository
	now  func() time.Time

	// places is the number of decimal places of the currency's smallest
	// unit; discounts are rounded half-up to it.
	places int32
}

func NewEngine(repo PromoRepository) *Engine {
	return &Engine{
		repo:   repo,
		now:    time.Now,
		places: 2,
	}
}

// ValidatePromo checks existence, active flag and validity window at the
// given time. Cart-dependent constraints (minimum subtotal) are checked
// during ApplyDiscounts. Unknown codes yield Valid=false, never an error.
func (e *Engine) ValidatePromo(ctx context.Context, code string, now time.Time) (domain.PromoValidation, error) {
	promo, err := e.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrPromoNotFound) {
			return domain.PromoValidation{Valid: false, Reason: ReasonNotFound}, nil
		}
		return domain.PromoValidation{}, fmt.Errorf("promo lookup failed: %w", err)
	}

	if reason := rejectAt(promo, now); reason != "" {
		return domain.PromoValidation{Valid: false, Reason: reason}, nil
	}
	return domain.PromoValidation{Valid: true}, nil
}

// ApplyDiscounts computes the discount breakdown for a cart snapshot. The
// promo code is re-validated here rather than trusted from the caller. The
// combined discount never exceeds the subtotal; the final total floors at
// zero.
func (e *Engine) ApplyDiscounts(ctx context.Context, cart *domain.Cart, code string) (*domain.DiscountResult, error) {
	subtotal := cart.Subtotal()
	result := &domain.DiscountResult{
		Subtotal:      subtotal,
		PromoDiscount: decimal.Zero,
		RuleDiscount:  decimal.Zero,
		Total:         subtotal,
	}

	if code != "" {
		promoDiscount, rejection, err := e.promoDiscount(ctx, code, subtotal)
		if err != nil {
			return nil, err
		}
		if rejection != "" {
			result.PromoRejection = rejection
		} else {
			result.PromoDiscount = promoDiscount
			result.AppliedCode = strings.ToUpper(code)
		}
	}

	result.RuleDiscount = e.bulkDiscount(cart)

	combined := result.PromoDiscount.Add(result.RuleDiscount)
	if combined.GreaterThan(subtotal) {
		combined = subtotal
	}
	result.Total = subtotal.Sub(combined)

	return result, nil
}

func (e *Engine) promoDiscount(ctx context.Context, code string, subtotal decimal.Decimal) (decimal.Decimal, string, error) {
	p, err := e.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrPromoNotFound) {
			return decimal.Zero, ReasonNotFound, nil
		}
		return decimal.Zero, "", fmt.Errorf("promo lookup failed: %w", err)
	}

	if reason := rejectAt(p, e.now()); reason != "" {
		return decimal.Zero, reason, nil
	}
	if subtotal.LessThan(p.MinSubtotal) {
		return decimal.Zero, ReasonMinSubtotal, nil
	}

	switch p.Kind {
	case domain.PromoKindPercent:
		// Half-up rounding to the currency's smallest unit. Round is
		// half-away-from-zero, which equals half-up for non-negative
		// amounts.
		return subtotal.Mul(p.Value).Div(decimal.NewFromInt(100)).Round(e.places), "", nil
	case domain.PromoKindFixed:
		if p.Value.GreaterThan(subtotal) {
			return subtotal, "", nil
		}
		return p.Value, "", nil
	}
	return decimal.Zero, ReasonInactive, nil
}

func (e *Engine) bulkDiscount(cart *domain.Cart) decimal.Decimal {
	total := decimal.Zero
	pct := decimal.NewFromInt(bulkDiscountPercent)
	for _, item := range cart.Items {
		if item.Quantity < bulkQuantityThreshold {
			continue
		}
		line := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line.Mul(pct).Div(decimal.NewFromInt(100)).Round(e.places))
	}
	return total
}

func rejectAt(p *domain.PromoCode, t time.Time) string {
	if !p.IsActive {
		return ReasonInactive
	}
	if p.StartsAt != nil && t.Before(*p.StartsAt) {
		return ReasonNotStarted
	}
	if p.EndsAt != nil && t.After(*p.EndsAt) {
		return ReasonExpired
	}
	return ""
}
