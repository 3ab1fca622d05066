package payment

import (
	"context"

	"github.com/vadimdav12/TestTGBOT/internal/domain"
)

// Session is what the external gateway hands back for a new payment.
type Session struct {
	SessionID  string `json:"session_id"`
	PaymentURL string `json:"payment_url"`
}

// Gateway creates payment sessions with the external payment provider.
// All provider failures surface as a single error kind wrapping
// domain.ErrPaymentGateway.
type Gateway interface {
	CreateSession(ctx context.Context, order *domain.Order) (*Session, error)
}
