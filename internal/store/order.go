package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"toolshop/internal/models"
)

// OrderStore handles orders and, transactionally, their items.
type OrderStore struct {
	db *sql.DB
}

// NewOrderStore creates a new OrderStore with the given database connection.
func NewOrderStore(db *sql.DB) *OrderStore {
	return &OrderStore{db: db}
}

const orderColumns = `id, account_id, email, phone, full_name, address, status, total, comment, created_at, updated_at`

func scanOrder(row scanner) (*models.Order, error) {
	var o models.Order
	err := row.Scan(
		&o.ID, &o.AccountID, &o.Email, &o.Phone, &o.FullName, &o.Address,
		&o.Status, &o.Total, &o.Comment, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// OrderFilter narrows List. From and To bound created_at; To is exclusive.
type OrderFilter struct {
	Status models.OrderStatus
	From   *time.Time
	To     *time.Time
	Search string
}

// List returns orders matching the filter, newest first.
func (s *OrderStore) List(ctx context.Context, f OrderFilter) ([]models.Order, error) {
	var w where
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.From != nil {
		w.add("created_at >= ?", *f.From)
	}
	if f.To != nil {
		w.add("created_at < ?", *f.To)
	}
	if f.Search != "" {
		q := likePattern(f.Search)
		w.add("(phone ILIKE ? OR email ILIKE ? OR full_name ILIKE ?)", q, q, q)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT `+orderColumns+` FROM orders`+w.String()+` ORDER BY created_at DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

// FindByID retrieves an order with its items and payments. Returns nil if
// not found.
func (s *OrderStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	o, err := scanOrder(s.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find order by id: %w", err)
	}

	if o.Items, err = listOrderItems(ctx, s.db, id); err != nil {
		return nil, err
	}
	if o.Payments, err = listPayments(ctx, s.db, PaymentFilter{OrderID: &id}); err != nil {
		return nil, err
	}
	return o, nil
}

// Create inserts the order and its items in one transaction. A zero Status
// defaults to new.
func (s *OrderStore) Create(ctx context.Context, o *models.Order) (*models.Order, error) {
	if o.Status == "" {
		o.Status = models.OrderStatusNew
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	for i := range o.Items {
		if err := o.Items[i].Validate(); err != nil {
			return nil, err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	created, err := scanOrder(tx.QueryRowContext(ctx, `
		INSERT INTO orders (account_id, email, phone, full_name, address, status, total, comment)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+orderColumns,
		o.AccountID, o.Email, o.Phone, o.FullName, o.Address, o.Status, o.Total, o.Comment,
	))
	if err != nil {
		return nil, fmt.Errorf("create order: %w", translate(err))
	}

	for _, item := range o.Items {
		item.OrderID = created.ID
		saved, err := insertOrderItem(ctx, tx, &item)
		if err != nil {
			return nil, err
		}
		created.Items = append(created.Items, *saved)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit order: %w", err)
	}
	return created, nil
}

// Update modifies the order's own fields. Items are not touched.
func (s *OrderStore) Update(ctx context.Context, o *models.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE orders SET
			account_id = $1, email = $2, phone = $3, full_name = $4, address = $5,
			status = $6, total = $7, comment = $8, updated_at = NOW()
		WHERE id = $9`,
		o.AccountID, o.Email, o.Phone, o.FullName, o.Address, o.Status, o.Total, o.Comment, o.ID,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", translate(err))
	}
	return expectRow(res)
}

// UpdateStatus sets the status label. Any status may follow any other.
func (s *OrderStore) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	if !status.Valid() {
		return &models.ValidationError{Field: "status", Message: fmt.Sprintf("unknown value %q", status)}
	}
	res, err := s.db.ExecContext(ctx, `UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return expectRow(res)
}

// Delete removes an order with its items. Payments and ledger entries that
// referenced it are kept with the link cleared.
func (s *OrderStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return expectRow(res)
}
