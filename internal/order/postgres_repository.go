package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/shopspring/decimal"
	_ "github.com/lib/pq"

	"github.com/vadimdav12/TestTGBOT/internal/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(cred *Credentials) (*PostgresRepository, error) {
	psqlconn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cred.Host,
		cred.Port,
		cred.User,
		cred.Password,
		cred.DBName)

	db, err := sql.Open("postgres", psqlconn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if e2 := db.Ping(); e2 != nil {
		return nil, fmt.Errorf("failed to ping database: %w", e2)
	}

	db.SetMaxOpenConns(100)
	db.SetMaxIdleConns(10)
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) RunMigrations(cred *Credentials) error {
	driver, err := postgres.WithInstance(r.db, &postgres.Config{
		MigrationsTable: "orders_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", cred.MigrationsDirPath),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if e2 := m.Up(); e2 != nil && !errors.Is(e2, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", e2)
	}

	return nil
}

func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order) (int64, error) {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal order items: %w", err)
	}

	query := `INSERT INTO orders
	          (user_id, contact_name, contact_phone, contact_address, promo_code,
	           subtotal, promo_discount, rule_discount, total, status, items,
	           created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
	          RETURNING id, created_at, updated_at`

	err = r.db.QueryRowContext(ctx, query,
		order.UserID,
		order.Contact.Name,
		order.Contact.Phone,
		order.Contact.Address,
		order.PromoCode,
		order.Subtotal.String(),
		order.PromoDiscount.String(),
		order.RuleDiscount.String(),
		order.Total.String(),
		order.Status,
		itemsJSON,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}
	return order.ID, nil
}

func (r *PostgresRepository) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	query := selectOrder + ` WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	order, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order by id: %w", err)
	}
	return order, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	query := `UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if rows == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *PostgresRepository) SetPaymentSession(ctx context.Context, id int64, sessionID string) error {
	query := `UPDATE orders SET payment_session_id = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, sessionID)
	if err != nil {
		return fmt.Errorf("set payment session: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set payment session: %w", err)
	}
	if rows == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *PostgresRepository) GetOrderItems(ctx context.Context, id int64) ([]domain.OrderItem, error) {
	order, err := r.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	return order.Items, nil
}

func (r *PostgresRepository) ListOrdersByUser(ctx context.Context, userID int64) ([]*domain.Order, error) {
	query := selectOrder + ` WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query orders by user id: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return orders, nil
}

func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

const selectOrder = `SELECT id, user_id, contact_name, contact_phone, contact_address,
       promo_code, subtotal, promo_discount, rule_discount, total, status,
       COALESCE(payment_session_id, ''), items, created_at, updated_at
  FROM orders`

type scannable interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row scannable) (*domain.Order, error) {
	var (
		order                                     domain.Order
		subtotal, promoDiscount, ruleDiscount, tt string
		itemsJSON                                 []byte
	)

	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.Contact.Name,
		&order.Contact.Phone,
		&order.Contact.Address,
		&order.PromoCode,
		&subtotal,
		&promoDiscount,
		&ruleDiscount,
		&tt,
		&order.Status,
		&order.PaymentSessionID,
		&itemsJSON,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if order.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
		return nil, fmt.Errorf("invalid subtotal %q: %w", subtotal, err)
	}
	if order.PromoDiscount, err = decimal.NewFromString(promoDiscount); err != nil {
		return nil, fmt.Errorf("invalid promo discount %q: %w", promoDiscount, err)
	}
	if order.RuleDiscount, err = decimal.NewFromString(ruleDiscount); err != nil {
		return nil, fmt.Errorf("invalid rule discount %q: %w", ruleDiscount, err)
	}
	if order.Total, err = decimal.NewFromString(tt); err != nil {
		return nil, fmt.Errorf("invalid total %q: %w", tt, err)
	}

	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}

	return &order, nil
}
