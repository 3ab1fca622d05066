package favorites

import (
	"context"
	"errors"
)

var ErrAlreadyFavorite = errors.New("product is already in favorites")

// Repository stores per-user favorite product sets.
type Repository interface {
	Add(ctx context.Context, userID, productID int64) error
	Remove(ctx context.Context, userID, productID int64) error
	List(ctx context.Context, userID int64) ([]int64, error)
}
