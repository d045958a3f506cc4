package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"toolshop/internal/models"
)

// AccountStore handles registered customer accounts.
type AccountStore struct {
	db *sql.DB
}

// NewAccountStore creates a new AccountStore with the given database connection.
func NewAccountStore(db *sql.DB) *AccountStore {
	return &AccountStore{db: db}
}

const accountColumns = `id, email, display_name, created_at`

func scanAccount(row scanner) (*models.Account, error) {
	var a models.Account
	if err := row.Scan(&a.ID, &a.Email, &a.DisplayName, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// FindByID retrieves an account by its UUID. Returns nil if not found.
func (s *AccountStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	a, err := scanAccount(s.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find account by id: %w", err)
	}
	return a, nil
}

// FindByEmail retrieves an account by email. Returns nil if not found.
func (s *AccountStore) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	a, err := scanAccount(s.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find account by email: %w", err)
	}
	return a, nil
}

// Create inserts a new account.
func (s *AccountStore) Create(ctx context.Context, a *models.Account) (*models.Account, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	created, err := scanAccount(s.db.QueryRowContext(ctx, `
		INSERT INTO accounts (email, display_name) VALUES ($1, $2)
		RETURNING `+accountColumns, a.Email, a.DisplayName))
	if err != nil {
		return nil, fmt.Errorf("create account: %w", translate(err))
	}
	return created, nil
}

// Delete removes an account. Its orders survive with account_id cleared.
func (s *AccountStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return expectRow(res)
}
