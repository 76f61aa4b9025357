// Package postgres implements the order store on pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/berkeshop/ecommerce-orders/internal/orders/core/domain/entity"
	"github.com/berkeshop/ecommerce-orders/internal/orders/core/domain/errs"
	"github.com/berkeshop/ecommerce-orders/internal/orders/core/ports"
)

// schema is applied once on startup; idempotent. One statement per entry:
// pgx's extended protocol does not accept multi-statement commands.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS orders (
	    id              UUID        PRIMARY KEY,
	    reference       TEXT        NOT NULL,
	    customer_id     TEXT        NOT NULL,
	    customer_email  TEXT        NOT NULL,
	    total_amount    NUMERIC     NOT NULL CHECK (total_amount >= 0),
	    payment_method  TEXT        NOT NULL,
	    status          TEXT        NOT NULL,
	    created_date    TIMESTAMPTZ NOT NULL
	)`,

	// reference is intentionally NOT unique: the caller supplies it and
	// this service guarantees no dedup.
	`CREATE INDEX IF NOT EXISTS idx_orders_reference ON orders(reference)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_customer_id ON orders(customer_id)`,

	`CREATE TABLE IF NOT EXISTS order_lines (
	    id          UUID    PRIMARY KEY,
	    order_id    UUID    NOT NULL REFERENCES orders(id),
	    product_id  INTEGER NOT NULL,
	    quantity    INTEGER NOT NULL CHECK (quantity > 0)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_order_lines_order_id ON order_lines(order_id)`,
}

// Store is the pgx-backed ports.OrderStore.
type Store struct {
	pool *pgxpool.Pool
}

var _ ports.OrderStore = (*Store)(nil)

// NewStore wraps an existing pool and applies the schema.
func NewStore(ctx context.Context, pool *pgxpool.Pool) (*Store, error) {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return nil, fmt.Errorf("postgres: apply schema: %w", err)
		}
	}
	return &Store{pool: pool}, nil
}

// CreateOrder inserts the order and all of its lines in one transaction, so
// a crash never leaves orphaned lines or an order with no lines.
func (s *Store) CreateOrder(ctx context.Context, order *entity.Order, lines []entity.OrderLine) (*entity.Order, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("postgres: begin create order: %w", err)
	}
	defer tx.Rollback(ctx)

	const insertOrder = `
		INSERT INTO orders
			(id, reference, customer_id, customer_email, total_amount, payment_method, status, created_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = tx.Exec(ctx, insertOrder,
		order.ID,
		order.Reference,
		order.CustomerID,
		order.CustomerEmail,
		order.TotalAmount,
		order.PaymentMethod,
		string(order.Status),
		order.CreatedDate,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: insert order %s: %w", order.Reference, err)
	}

	const insertLine = `
		INSERT INTO order_lines (id, order_id, product_id, quantity)
		VALUES ($1, $2, $3, $4)`

	for _, line := range lines {
		if _, err := tx.Exec(ctx, insertLine, line.ID, line.OrderID, line.ProductID, line.Quantity); err != nil {
			return nil, fmt.Errorf("postgres: insert order line for %s: %w", order.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("postgres: commit create order %s: %w", order.Reference, err)
	}

	return order, nil
}

// UpdateStatus persists a status transition.
func (s *Store) UpdateStatus(ctx context.Context, orderID string, status entity.OrderStatus) error {
	const q = `UPDATE orders SET status = $2 WHERE id = $1`

	tag, err := s.pool.Exec(ctx, q, orderID, string(status))
	if err != nil {
		return fmt.Errorf("postgres: update status of %s: %w", orderID, err)
	}
	if tag.RowsAffected() == 0 {
		return &errs.OrderNotFoundError{OrderID: orderID}
	}
	return nil
}

// GetByID returns the order or an OrderNotFoundError.
func (s *Store) GetByID(ctx context.Context, orderID string) (*entity.Order, error) {
	const q = `
		SELECT id, reference, customer_id, customer_email, total_amount, payment_method, status, created_date
		FROM   orders
		WHERE  id = $1`

	row := s.pool.QueryRow(ctx, q, orderID)
	order, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &errs.OrderNotFoundError{OrderID: orderID}
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: get order %s: %w", orderID, err)
	}
	return order, nil
}

// List returns all orders, newest first.
func (s *Store) List(ctx context.Context) ([]entity.Order, error) {
	const q = `
		SELECT id, reference, customer_id, customer_email, total_amount, payment_method, status, created_date
		FROM   orders
		ORDER  BY created_date DESC`

	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("postgres: list orders: %w", err)
	}
	defer rows.Close()

	var orders []entity.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan order: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: list orders: %w", err)
	}
	return orders, nil
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var (
		order  entity.Order
		status string
	)
	err := row.Scan(
		&order.ID,
		&order.Reference,
		&order.CustomerID,
		&order.CustomerEmail,
		&order.TotalAmount,
		&order.PaymentMethod,
		&status,
		&order.CreatedDate,
	)
	if err != nil {
		return nil, err
	}
	order.Status = entity.OrderStatus(status)
	return &order, nil
}
