package discount

import (
	"context"
	"strings"
	"sync"

	"github.com/vadimdav12/TestTGBOT/internal/domain"
)

// MemoryPromoRepository is an in-memory PromoRepository for tests and
// local development.
type MemoryPromoRepository struct {
	mu     sync.RWMutex
	promos map[string]*domain.PromoCode
}

func NewMemoryPromoRepository() *MemoryPromoRepository {
	return &MemoryPromoRepository{
		promos: make(map[string]*domain.PromoCode),
	}
}

func (r *MemoryPromoRepository) Put(promo *domain.PromoCode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.promos[strings.ToUpper(promo.Code)] = promo
}

func (r *MemoryPromoRepository) GetByCode(_ context.Context, code string) (*domain.PromoCode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	promo, exists := r.promos[strings.ToUpper(code)]
	if !exists {
		return nil, ErrPromoNotFound
	}
	copied := *promo
	return &copied, nil
}
