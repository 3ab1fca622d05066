package checkout

import (
	"context"
	"fmt"
	"log"
	"sort"

	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/vadimdav12/TestTGBOT/internal/cart"
	"github.com/vadimdav12/TestTGBOT/internal/discount"
	"github.com/vadimdav12/TestTGBOT/internal/domain"
	"github.com/vadimdav12/TestTGBOT/internal/events"
	"github.com/vadimdav12/TestTGBOT/internal/notify"
	"github.com/vadimdav12/TestTGBOT/internal/order"
	"github.com/vadimdav12/TestTGBOT/internal/stock"
)

// Service turns a user's cart plus contact data into a durable order. A
// failed checkout leaves no partial side effects: every stock reservation
// made before the failure is released again.
type Service struct {
	carts    *cart.Service
	engine   *discount.Engine
	ledger   stock.Ledger
	orders   order.Repository
	notifier *notify.Service
	events   events.Publisher
	validate *validatorv10.Validate
}

func NewService(
	carts *cart.Service,
	engine *discount.Engine,
	ledger stock.Ledger,
	orders order.Repository,
	notifier *notify.Service,
	publisher events.Publisher,
	validate *validatorv10.Validate,
) *Service {
	return &Service{
		carts:    carts,
		engine:   engine,
		ledger:   ledger,
		orders:   orders,
		notifier: notifier,
		events:   publisher,
		validate: validate,
	}
}

type reservation struct {
	productID int64
	quantity  int
}

// CreateOrder runs the checkout pipeline for the given user.
func (s *Service) CreateOrder(ctx context.Context, userID int64, contact domain.ContactData) (*domain.Order, error) {
	if err := s.validate.Struct(contact); err != nil {
		return nil, fmt.Errorf("invalid contact data: %w", err)
	}

	userCart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if userCart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}

	// Fail fast before touching any stock: if anything is short now,
	// refuse the whole checkout without reserving.
	for _, item := range userCart.Items {
		if !s.ledger.CheckAvailable(item.ProductID, item.Quantity) {
			return nil, &domain.InsufficientStockError{
				ProductID: item.ProductID,
				Available: s.ledger.Available(item.ProductID),
			}
		}
	}

	reserved, err := s.reserveAll(userCart)
	if err != nil {
		return nil, err
	}

	result, err := s.engine.ApplyDiscounts(ctx, userCart, userCart.PromoCode)
	if err != nil {
		s.releaseAll(reserved)
		return nil, fmt.Errorf("failed to apply discounts: %w", err)
	}

	newOrder := buildOrder(userCart, contact, result)
	if _, err := s.orders.CreateOrder(ctx, newOrder); err != nil {
		s.releaseAll(reserved)
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	// The order is committed from here on. Nothing below may undo it.
	if err := s.carts.ClearCart(ctx, userID); err != nil {
		log.Printf("failed to clear cart for user %d after order %d: %v", userID, newOrder.ID, err)
	}

	go s.afterCommit(newOrder)

	return newOrder, nil
}

// reserveAll reserves stock in ascending product id order so that
// concurrent checkouts touching overlapping products always acquire
// per-product atomicity in the same order. On a mid-sequence failure every
// reservation already made for this checkout is released.
func (s *Service) reserveAll(userCart *domain.Cart) ([]reservation, error) {
	toReserve := make([]reservation, 0, len(userCart.Items))
	for _, item := range userCart.Items {
		toReserve = append(toReserve, reservation{productID: item.ProductID, quantity: item.Quantity})
	}
	sort.Slice(toReserve, func(i, j int) bool {
		return toReserve[i].productID < toReserve[j].productID
	})

	reserved := make([]reservation, 0, len(toReserve))
	for _, r := range toReserve {
		if err := s.ledger.Reserve(r.productID, r.quantity); err != nil {
			s.releaseAll(reserved)
			return nil, err
		}
		reserved = append(reserved, r)
	}
	return reserved, nil
}

func (s *Service) releaseAll(reserved []reservation) {
	for _, r := range reserved {
		if err := s.ledger.Release(r.productID, r.quantity); err != nil {
			log.Printf("failed to release %d units of product %d: %v", r.quantity, r.productID, err)
		}
	}
}

// afterCommit runs the fire-and-forget tail of a checkout. Failures here
// are logged and never surface to the caller.
func (s *Service) afterCommit(newOrder *domain.Order) {
	ctx := context.Background()

	message := fmt.Sprintf("Order #%d created, total %s", newOrder.ID, newOrder.Total.String())
	if err := s.notifier.NotifyUser(ctx, newOrder.UserID, message); err != nil {
		log.Printf("failed to notify user %d about order %d: %v", newOrder.UserID, newOrder.ID, err)
	}
	if err := s.notifier.NotifyAdmins(ctx, fmt.Sprintf("New order #%d from user %d", newOrder.ID, newOrder.UserID)); err != nil {
		log.Printf("failed to notify admins about order %d: %v", newOrder.ID, err)
	}
	if err := s.events.PublishOrderCreated(ctx, newOrder); err != nil {
		log.Printf("failed to publish order created event for order %d: %v", newOrder.ID, err)
	}
}

// buildOrder snapshots the cart into an immutable order. Item prices come
// from the cart's captured values; the caller never supplies totals.
func buildOrder(userCart *domain.Cart, contact domain.ContactData, result *domain.DiscountResult) *domain.Order {
	items := make([]domain.OrderItem, len(userCart.Items))
	for i, item := range userCart.Items {
		items[i] = domain.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
	}

	return &domain.Order{
		UserID:        userCart.UserID,
		Items:         items,
		Contact:       contact,
		Subtotal:      result.Subtotal,
		PromoCode:     result.AppliedCode,
		PromoDiscount: result.PromoDiscount,
		RuleDiscount:  result.RuleDiscount,
		Total:         result.Total,
		Status:        domain.OrderStatusCreated,
	}
}
