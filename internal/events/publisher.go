package events

import (
	"context"

	"github.com/vadimdav12/TestTGBOT/internal/domain"
)

// Event types published to the order events topic.
const (
	TypeOrderCreated = "order.created"
	TypeOrderPaid    = "order.paid"
)

// Publisher emits order lifecycle events for downstream consumers
// (analytics, fulfillment). Publishing is best-effort: failures are logged
// by callers, never propagated into the order's success path.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, order *domain.Order) error
	PublishOrderPaid(ctx context.Context, order *domain.Order) error
	Close() error
}

// NopPublisher drops all events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishOrderCreated(context.Context, *domain.Order) error { return nil }
func (NopPublisher) PublishOrderPaid(context.Context, *domain.Order) error    { return nil }
func (NopPublisher) Close() error                                             { return nil }
