package cart

import (
	"context"
	"errors"

	"github.com/vadimdav12/TestTGBOT/internal/domain"
)

type CartCache interface {
	Get(ctx context.Context, userID int64) (*domain.Cart, error)
	Set(ctx context.Context, userID int64, cart *domain.Cart) error
	Delete(ctx context.Context, userID int64) error
}

var ErrCacheMiss = errors.New("cache miss")

// NopCache is used when no Redis instance is configured. Every read is a
// miss and writes are dropped.
type NopCache struct{}

func (NopCache) Get(context.Context, int64) (*domain.Cart, error) { return nil, ErrCacheMiss }
func (NopCache) Set(context.Context, int64, *domain.Cart) error   { return nil }
func (NopCache) Delete(context.Context, int64) error              { return nil }
