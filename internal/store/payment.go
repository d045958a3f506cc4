package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"toolshop/internal/models"
)

// PaymentStore handles payments recorded against orders.
type PaymentStore struct {
	db *sql.DB
}

// NewPaymentStore creates a new PaymentStore with the given database connection.
func NewPaymentStore(db *sql.DB) *PaymentStore {
	return &PaymentStore{db: db}
}

const paymentColumns = `id, order_id, amount, method, status, description, created_at`

func scanPayment(row scanner) (*models.Payment, error) {
	var p models.Payment
	if err := row.Scan(&p.ID, &p.OrderID, &p.Amount, &p.Method, &p.Status, &p.Description, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// PaymentFilter narrows List. Zero values match everything.
type PaymentFilter struct {
	Status  models.PaymentStatus
	Method  models.PaymentMethod
	OrderID *uuid.UUID
}

func listPayments(ctx context.Context, db querier, f PaymentFilter) ([]models.Payment, error) {
	var w where
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.Method != "" {
		w.add("method = ?", f.Method)
	}
	if f.OrderID != nil {
		w.add("order_id = ?", *f.OrderID)
	}

	rows, err := db.QueryContext(ctx, `SELECT `+paymentColumns+` FROM payments`+w.String()+` ORDER BY created_at DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

// List returns payments matching the filter, newest first.
func (s *PaymentStore) List(ctx context.Context, f PaymentFilter) ([]models.Payment, error) {
	return listPayments(ctx, s.db, f)
}

// ListByOrder returns the payments recorded against one order.
func (s *PaymentStore) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.Payment, error) {
	return listPayments(ctx, s.db, PaymentFilter{OrderID: &orderID})
}

// FindByID retrieves a payment by its UUID. Returns nil if not found.
func (s *PaymentStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	p, err := scanPayment(s.db.QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find payment by id: %w", err)
	}
	return p, nil
}

// Create records a payment. Zero method and status default to card and
// pending.
func (s *PaymentStore) Create(ctx context.Context, p *models.Payment) (*models.Payment, error) {
	if p.Method == "" {
		p.Method = models.PaymentMethodCard
	}
	if p.Status == "" {
		p.Status = models.PaymentStatusPending
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	created, err := scanPayment(s.db.QueryRowContext(ctx, `
		INSERT INTO payments (order_id, amount, method, status, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+paymentColumns,
		p.OrderID, p.Amount, p.Method, p.Status, p.Description,
	))
	if err != nil {
		return nil, fmt.Errorf("create payment: %w", translate(err))
	}
	return created, nil
}

// Update modifies the order link, amount, method, status and description.
func (s *PaymentStore) Update(ctx context.Context, p *models.Payment) error {
	if err := p.Validate(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE payments SET order_id = $1, amount = $2, method = $3, status = $4, description = $5
		WHERE id = $6`,
		p.OrderID, p.Amount, p.Method, p.Status, p.Description, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update payment: %w", translate(err))
	}
	return expectRow(res)
}

// Delete removes a payment. Ledger entries keep existing with the link cleared.
func (s *PaymentStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return expectRow(res)
}
