package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"toolshop/internal/models"
)

// OrderItemStore gives read access to order lines. Lines are written only
// through OrderStore.Create.
type OrderItemStore struct {
	db *sql.DB
}

// NewOrderItemStore creates a new OrderItemStore with the given database connection.
func NewOrderItemStore(db *sql.DB) *OrderItemStore {
	return &OrderItemStore{db: db}
}

const orderItemColumns = `id, order_id, product_id, product_name, price, quantity`

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func scanOrderItem(row scanner) (*models.OrderItem, error) {
	var i models.OrderItem
	if err := row.Scan(&i.ID, &i.OrderID, &i.ProductID, &i.ProductName, &i.Price, &i.Quantity); err != nil {
		return nil, err
	}
	return &i, nil
}

func insertOrderItem(ctx context.Context, db execer, i *models.OrderItem) (*models.OrderItem, error) {
	saved, err := scanOrderItem(db.QueryRowContext(ctx, `
		INSERT INTO order_items (order_id, product_id, product_name, price, quantity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+orderItemColumns,
		i.OrderID, i.ProductID, i.ProductName, i.Price, i.Quantity,
	))
	if err != nil {
		return nil, fmt.Errorf("create order item: %w", translate(err))
	}
	return saved, nil
}

func queryOrderItems(ctx context.Context, db querier, query string, args ...any) ([]models.OrderItem, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		i, err := scanOrderItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, *i)
	}
	return items, rows.Err()
}

func listOrderItems(ctx context.Context, db querier, orderID uuid.UUID) ([]models.OrderItem, error) {
	return queryOrderItems(ctx, db, `SELECT `+orderItemColumns+` FROM order_items WHERE order_id = $1 ORDER BY product_name`, orderID)
}

// ListByOrder returns the lines of one order.
func (s *OrderItemStore) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	return listOrderItems(ctx, s.db, orderID)
}

// List returns all order lines, optionally restricted to one order.
func (s *OrderItemStore) List(ctx context.Context, orderID *uuid.UUID) ([]models.OrderItem, error) {
	if orderID != nil {
		return listOrderItems(ctx, s.db, *orderID)
	}
	return queryOrderItems(ctx, s.db, `
		SELECT i.id, i.order_id, i.product_id, i.product_name, i.price, i.quantity
		FROM order_items i JOIN orders o ON o.id = i.order_id
		ORDER BY o.created_at DESC, i.product_name`)
}
