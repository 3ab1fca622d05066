package order

import (
	"context"

	"github.com/vadimdav12/TestTGBOT/internal/domain"
)

type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

// Repository is the durable order store. Orders are never deleted; status
// changes go through UpdateStatus and the caller is responsible for only
// requesting legal transitions.
type Repository interface {
	CreateOrder(ctx context.Context, order *domain.Order) (int64, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error
	SetPaymentSession(ctx context.Context, id int64, sessionID string) error
	GetOrderItems(ctx context.Context, id int64) ([]domain.OrderItem, error)
	ListOrdersByUser(ctx context.Context, userID int64) ([]*domain.Order, error)
}
