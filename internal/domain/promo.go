package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PromoKind string

const (
	PromoKindPercent PromoKind = "percent"
	PromoKindFixed   PromoKind = "fixed"
)

// PromoCode is matched case-insensitively; Code is stored uppercased.
// StartsAt/EndsAt are open-ended when nil.
type PromoCode struct {
	Code        string
	Kind        PromoKind
	Value       decimal.Decimal
	StartsAt    *time.Time
	EndsAt      *time.Time
	IsActive    bool
	MinSubtotal decimal.Decimal
}

// PromoValidation is the result of a pure promo lookup, independent of any
// cart. Reason is set only when Valid is false.
type PromoValidation struct {
	Valid  bool
	Reason string
}

// DiscountResult is the full discount breakdown for a cart snapshot.
// AppliedCode is empty when no promo was applied; PromoRejection explains
// why a supplied code was not applied.
type DiscountResult struct {
	Subtotal       decimal.Decimal
	PromoDiscount  decimal.Decimal
	RuleDiscount   decimal.Decimal
	Total          decimal.Decimal
	AppliedCode    string
	PromoRejection string
}
