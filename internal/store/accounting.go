package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"toolshop/internal/models"
)

// AccountingStore handles the income/expense ledger.
type AccountingStore struct {
	db *sql.DB
}

// NewAccountingStore creates a new AccountingStore with the given database connection.
func NewAccountingStore(db *sql.DB) *AccountingStore {
	return &AccountingStore{db: db}
}

const entryColumns = `id, entry_date, entry_type, amount, description, order_id, payment_id, created_at`

func scanEntry(row scanner) (*models.AccountingEntry, error) {
	var e models.AccountingEntry
	err := row.Scan(&e.ID, &e.Date, &e.Type, &e.Amount, &e.Description, &e.OrderID, &e.PaymentID, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// EntryFilter narrows List and Totals. From and To are inclusive dates.
type EntryFilter struct {
	Type   models.EntryType
	From   *time.Time
	To     *time.Time
	Search string
}

func (f EntryFilter) where() *where {
	w := &where{}
	if f.Type != "" {
		w.add("entry_type = ?", f.Type)
	}
	if f.From != nil {
		w.add("entry_date >= ?", *f.From)
	}
	if f.To != nil {
		w.add("entry_date <= ?", *f.To)
	}
	if f.Search != "" {
		w.add("description ILIKE ?", likePattern(f.Search))
	}
	return w
}

// List returns ledger entries matching the filter, latest date first.
func (s *AccountingStore) List(ctx context.Context, f EntryFilter) ([]models.AccountingEntry, error) {
	w := f.where()
	rows, err := s.db.QueryContext(ctx, `SELECT `+entryColumns+` FROM accounting_entries`+w.String()+
		` ORDER BY entry_date DESC, created_at DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list accounting entries: %w", err)
	}
	defer rows.Close()

	var entries []models.AccountingEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan accounting entry: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// FindByID retrieves a ledger entry by its UUID. Returns nil if not found.
func (s *AccountingStore) FindByID(ctx context.Context, id uuid.UUID) (*models.AccountingEntry, error) {
	e, err := scanEntry(s.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM accounting_entries WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find accounting entry by id: %w", err)
	}
	return e, nil
}

// Create inserts a ledger entry.
func (s *AccountingStore) Create(ctx context.Context, e *models.AccountingEntry) (*models.AccountingEntry, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	created, err := scanEntry(s.db.QueryRowContext(ctx, `
		INSERT INTO accounting_entries (entry_date, entry_type, amount, description, order_id, payment_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+entryColumns,
		e.Date, e.Type, e.Amount, e.Description, e.OrderID, e.PaymentID,
	))
	if err != nil {
		return nil, fmt.Errorf("create accounting entry: %w", translate(err))
	}
	return created, nil
}

// Update modifies a ledger entry.
func (s *AccountingStore) Update(ctx context.Context, e *models.AccountingEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE accounting_entries SET
			entry_date = $1, entry_type = $2, amount = $3, description = $4,
			order_id = $5, payment_id = $6
		WHERE id = $7`,
		e.Date, e.Type, e.Amount, e.Description, e.OrderID, e.PaymentID, e.ID,
	)
	if err != nil {
		return fmt.Errorf("update accounting entry: %w", translate(err))
	}
	return expectRow(res)
}

// Delete removes a ledger entry.
func (s *AccountingStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM accounting_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete accounting entry: %w", err)
	}
	return expectRow(res)
}

// Totals sums income and expense over the entries matching the filter.
// The Search field is honored so totals match the filtered list.
func (s *AccountingStore) Totals(ctx context.Context, f EntryFilter) (models.LedgerTotals, error) {
	w := f.where()
	var t models.LedgerTotals
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE entry_type = 'income'), 0),
			COALESCE(SUM(amount) FILTER (WHERE entry_type = 'expense'), 0)
		FROM accounting_entries`+w.String(), w.args...,
	).Scan(&t.Income, &t.Expense)
	if err != nil {
		return models.LedgerTotals{}, fmt.Errorf("sum accounting entries: %w", err)
	}
	return t, nil
}
