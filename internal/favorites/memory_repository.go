package favorites

import (
	"context"
	"sync"
)

// MemoryRepository is an in-memory Repository for tests and local
// development.
type MemoryRepository struct {
	mu        sync.RWMutex
	favorites map[int64][]int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{favorites: make(map[int64][]int64)}
}

func (r *MemoryRepository) Add(_ context.Context, userID, productID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.favorites[userID] {
		if id == productID {
			return ErrAlreadyFavorite
		}
	}
	r.favorites[userID] = append(r.favorites[userID], productID)
	return nil
}

func (r *MemoryRepository) Remove(_ context.Context, userID, productID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := r.favorites[userID]
	for i, id := range ids {
		if id == productID {
			r.favorites[userID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *MemoryRepository) List(_ context.Context, userID int64) ([]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]int64, len(r.favorites[userID]))
	copy(out, r.favorites[userID])
	return out, nil
}
