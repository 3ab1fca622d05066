package order

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/vadimdav12/TestTGBOT/internal/domain"
)

func setupTestDB(t *testing.T) *PostgresRepository {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)

	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	creds := &Credentials{
		Host:              host,
		Port:              port.Int(),
		User:              "testuser",
		Password:          "testpass",
		DBName:            "testdb",
		MigrationsDirPath: "../../migrations",
	}

	repo, err := NewPostgresRepository(creds)
	require.NoError(t, err)

	require.NoError(t, repo.RunMigrations(creds))

	t.Cleanup(func() {
		repo.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	return repo
}

func TestPostgresRepository_CreateAndGetOrder(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	id, err := repo.CreateOrder(ctx, sampleOrder(1))
	require.NoError(t, err)
	require.NotZero(t, id)

	got, err := repo.GetOrder(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, int64(1), got.UserID)
	assert.Equal(t, domain.OrderStatusCreated, got.Status)
	assert.Equal(t, "SAVE10", got.PromoCode)
	assert.True(t, got.Subtotal.Equal(decimal.NewFromInt(79990)))
	assert.True(t, got.Total.Equal(decimal.NewFromInt(71991)))
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Samsung", got.Items[0].Name)
	assert.True(t, got.Items[0].Price.Equal(decimal.NewFromInt(79990)))
}

func TestPostgresRepository_GetOrder_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetOrder(context.Background(), 424242)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestPostgresRepository_UpdateStatus_And_Session(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	id, err := repo.CreateOrder(ctx, sampleOrder(1))
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(ctx, id, domain.OrderStatusPaymentPending))
	require.NoError(t, repo.SetPaymentSession(ctx, id, "sess_123"))

	got, err := repo.GetOrder(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPaymentPending, got.Status)
	assert.Equal(t, "sess_123", got.PaymentSessionID)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, 424242, domain.OrderStatusPaid), domain.ErrOrderNotFound)
}

func TestPostgresRepository_ListOrdersByUser(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	_, err := repo.CreateOrder(ctx, sampleOrder(7))
	require.NoError(t, err)
	_, err = repo.CreateOrder(ctx, sampleOrder(7))
	require.NoError(t, err)
	_, err = repo.CreateOrder(ctx, sampleOrder(8))
	require.NoError(t, err)

	orders, err := repo.ListOrdersByUser(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	items, err := repo.GetOrderItems(ctx, orders[0].ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
