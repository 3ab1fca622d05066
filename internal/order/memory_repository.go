package order

import (
	"context"
	"sync"
	"time"

	"github.com/vadimdav12/TestTGBOT/internal/domain"
)

// MemoryRepository is an in-memory Repository for tests and local
// development.
type MemoryRepository struct {
	mu     sync.RWMutex
	orders map[int64]*domain.Order
	nextID int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		orders: make(map[int64]*domain.Order),
		nextID: 1,
	}
}

func (r *MemoryRepository) CreateOrder(_ context.Context, order *domain.Order) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order.ID = r.nextID
	r.nextID++

	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	r.orders[order.ID] = copyOrder(order)
	return order.ID, nil
}

func (r *MemoryRepository) GetOrder(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, exists := r.orders[id]
	if !exists {
		return nil, domain.ErrOrderNotFound
	}
	return copyOrder(order), nil
}

func (r *MemoryRepository) UpdateStatus(_ context.Context, id int64, status domain.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, exists := r.orders[id]
	if !exists {
		return domain.ErrOrderNotFound
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryRepository) SetPaymentSession(_ context.Context, id int64, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, exists := r.orders[id]
	if !exists {
		return domain.ErrOrderNotFound
	}
	order.PaymentSessionID = sessionID
	order.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryRepository) GetOrderItems(_ context.Context, id int64) ([]domain.OrderItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, exists := r.orders[id]
	if !exists {
		return nil, domain.ErrOrderNotFound
	}
	items := make([]domain.OrderItem, len(order.Items))
	copy(items, order.Items)
	return items, nil
}

func (r *MemoryRepository) ListOrdersByUser(_ context.Context, userID int64) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			out = append(out, copyOrder(order))
		}
	}
	return out, nil
}

func copyOrder(order *domain.Order) *domain.Order {
	copied := *order
	copied.Items = make([]domain.OrderItem, len(order.Items))
	copy(copied.Items, order.Items)
	return &copied
}
