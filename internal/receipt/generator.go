package receipt

import (
	"context"

	"github.com/vadimdav12/TestTGBOT/internal/domain"
)

// Generator produces a receipt document for a paid order and returns a
// handle (file path) to it.
type Generator interface {
	Generate(ctx context.Context, order *domain.Order, items []domain.OrderItem) (string, error)
}
