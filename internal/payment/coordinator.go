package payment

import (
	"context"
	"fmt"
	"log"

	"github.com/vadimdav12/TestTGBOT/internal/domain"
	"github.com/vadimdav12/TestTGBOT/internal/events"
	"github.com/vadimdav12/TestTGBOT/internal/notify"
	"github.com/vadimdav12/TestTGBOT/internal/order"
	"github.com/vadimdav12/TestTGBOT/internal/receipt"
)

// Coordinator creates payment sessions and reconciles asynchronous webhook
// callbacks against orders.
type Coordinator struct {
	orders   order.Repository
	gateway  Gateway
	receipts receipt.Generator
	notifier *notify.Service
	events   events.Publisher
}

func NewCoordinator(
	orders order.Repository,
	gateway Gateway,
	receipts receipt.Generator,
	notifier *notify.Service,
	publisher events.Publisher,
) *Coordinator {
	return &Coordinator{
		orders:   orders,
		gateway:  gateway,
		receipts: receipts,
		notifier: notifier,
		events:   publisher,
	}
}

// CreatePaymentSession opens a session with the external gateway and moves
// the order to payment_pending. Orders in created, payment_pending or
// failed may open a session; failed orders are retried this way rather
// than by mutating history. A gateway failure leaves the order's status
// untouched so the call can simply be repeated.
func (c *Coordinator) CreatePaymentSession(ctx context.Context, orderID int64) (*Session, error) {
	ord, err := c.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	switch ord.Status {
	case domain.OrderStatusCreated, domain.OrderStatusPaymentPending, domain.OrderStatusFailed:
	default:
		return nil, fmt.Errorf("%w: cannot pay order in status %s", domain.ErrInvalidOrderState, ord.Status)
	}

	session, err := c.gateway.CreateSession(ctx, ord)
	if err != nil {
		return nil, err
	}

	if ord.Status != domain.OrderStatusPaymentPending {
		if err := c.orders.UpdateStatus(ctx, orderID, domain.OrderStatusPaymentPending); err != nil {
			return nil, fmt.Errorf("failed to update order status: %w", err)
		}
	}
	if err := c.orders.SetPaymentSession(ctx, orderID, session.SessionID); err != nil {
		return nil, fmt.Errorf("failed to persist payment session: %w", err)
	}

	return session, nil
}

// ProcessWebhook reconciles a gateway callback into order state. It is
// external-facing and idempotent: duplicate and out-of-order deliveries
// return true without repeating side effects, and every malformed or
// unprocessable input returns false instead of an error.
func (c *Coordinator) ProcessWebhook(ctx context.Context, orderID int64, status string) bool {
	target, ok := domain.ParseOrderStatus(status)
	if !ok {
		log.Printf("webhook for order %d carries unknown status %q", orderID, status)
		return false
	}
	switch target {
	case domain.OrderStatusPaid, domain.OrderStatusFailed, domain.OrderStatusCancelled:
	default:
		log.Printf("webhook for order %d carries non-terminal status %q", orderID, status)
		return false
	}

	ord, err := c.orders.GetOrder(ctx, orderID)
	if err != nil {
		log.Printf("webhook for unknown order %d: %v", orderID, err)
		return false
	}

	// Duplicate delivery: the order already reached the implied status,
	// or moved past it. Succeed without re-triggering side effects.
	if ord.Status == target {
		return true
	}
	if target == domain.OrderStatusPaid && ord.Status == domain.OrderStatusFulfilled {
		return true
	}

	if !domain.CanTransitionTo(ord.Status, target) {
		log.Printf("webhook for order %d: illegal transition %s -> %s", orderID, ord.Status, target)
		return false
	}

	if err := c.orders.UpdateStatus(ctx, orderID, target); err != nil {
		log.Printf("webhook for order %d: failed to update status: %v", orderID, err)
		return false
	}
	ord.Status = target

	// Stock stays consumed on failed/cancelled payments: the reservation
	// became permanent when the order was created, restock is a separate
	// workflow.
	if target == domain.OrderStatusPaid {
		c.onPaid(ctx, ord)
	}

	return true
}

// onPaid runs the post-payment tail: receipt, notification, event. Each
// failure is logged and isolated; the order is already paid.
func (c *Coordinator) onPaid(ctx context.Context, ord *domain.Order) {
	items, err := c.orders.GetOrderItems(ctx, ord.ID)
	if err != nil {
		log.Printf("failed to load items of paid order %d: %v", ord.ID, err)
		return
	}

	handle, err := c.receipts.Generate(ctx, ord, items)
	if err != nil {
		log.Printf("failed to generate receipt for order %d: %v", ord.ID, err)
	} else {
		message := fmt.Sprintf("Payment for order #%d received. Receipt: %s", ord.ID, handle)
		if err := c.notifier.NotifyUser(ctx, ord.UserID, message); err != nil {
			log.Printf("failed to send receipt for order %d: %v", ord.ID, err)
		}
	}

	if err := c.events.PublishOrderPaid(ctx, ord); err != nil {
		log.Printf("failed to publish order paid event for order %d: %v", ord.ID, err)
	}
}
