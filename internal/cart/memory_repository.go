package cart

import (
	"context"
	"sync"
	"time"

	"github.com/vadimdav12/TestTGBOT/internal/domain"
)

// MemoryRepository is an in-memory CartRepository for tests and local
// development.
type MemoryRepository struct {
	mu    sync.RWMutex
	carts map[int64]*domain.Cart
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		carts: make(map[int64]*domain.Cart),
	}
}

func (r *MemoryRepository) GetCart(_ context.Context, userID int64) (*domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, exists := r.carts[userID]
	if !exists {
		return nil, ErrCartNotFound
	}
	return copyCart(cart), nil
}

func (r *MemoryRepository) UpsertCart(_ context.Context, cart *domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if cart.CreatedAt.IsZero() {
		cart.CreatedAt = now
	}
	cart.UpdatedAt = now
	r.carts[cart.UserID] = copyCart(cart)
	return nil
}

func (r *MemoryRepository) RemoveItem(_ context.Context, userID int64, productID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, exists := r.carts[userID]
	if !exists {
		return ErrCartNotFound
	}

	for i, item := range cart.Items {
		if item.ProductID == productID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			cart.UpdatedAt = time.Now()
			return nil
		}
	}
	return ErrItemNotFound
}

func (r *MemoryRepository) SetPromoCode(_ context.Context, userID int64, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, exists := r.carts[userID]
	if !exists {
		return ErrCartNotFound
	}
	cart.PromoCode = code
	cart.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryRepository) DeleteCart(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, userID)
	return nil
}

func copyCart(cart *domain.Cart) *domain.Cart {
	copied := *cart
	copied.Items = make([]domain.CartItem, len(cart.Items))
	copy(copied.Items, cart.Items)
	return &copied
}
