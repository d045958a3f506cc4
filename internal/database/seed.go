package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// demoAccountEmail identifies the development seed data.
const demoAccountEmail = "buyer@toolshop.local"

// Seed populates the database with development data: a demo customer with
// one paid order built from the base products, its payment and the matching
// ledger line. It is a no-op once the demo account exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM accounts WHERE email = $1", demoAccountEmail).Scan(&count); err != nil {
		return fmt.Errorf("seed check accounts: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin tx: %w", err)
	}
	defer tx.Rollback()

	var accountID string
	err = tx.QueryRow(`
		INSERT INTO accounts (email, display_name) VALUES ($1, $2) RETURNING id
	`, demoAccountEmail, "Иван Петров").Scan(&accountID)
	if err != nil {
		return fmt.Errorf("seed insert account: %w", err)
	}

	var orderID string
	err = tx.QueryRow(`
		INSERT INTO orders (account_id, email, phone, full_name, address, status, total, comment)
		SELECT $1, $2, '+7 900 000-00-00', 'Иван Петров', 'Москва, ул. Примерная, 1', 'paid',
		       COALESCE(SUM(price), 0), 'Демо-заказ'
		FROM products WHERE slug IN ('drel-udarnaya-gsb-18v-50', 'ushm-125-900')
		RETURNING id
	`, accountID, demoAccountEmail).Scan(&orderID)
	if err != nil {
		return fmt.Errorf("seed insert order: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO order_items (order_id, product_id, product_name, price, quantity)
		SELECT $1, id, name, price, 1
		FROM products WHERE slug IN ('drel-udarnaya-gsb-18v-50', 'ushm-125-900')
	`, orderID)
	if err != nil {
		return fmt.Errorf("seed insert order items: %w", err)
	}

	var paymentID string
	err = tx.QueryRow(`
		INSERT INTO payments (order_id, amount, method, status, description)
		SELECT id, total, 'card', 'completed', 'Оплата демо-заказа' FROM orders WHERE id = $1
		RETURNING id
	`, orderID).Scan(&paymentID)
	if err != nil {
		return fmt.Errorf("seed insert payment: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO accounting_entries (entry_date, entry_type, amount, description, order_id, payment_id)
		SELECT CURRENT_DATE, 'income', amount, 'Поступление по демо-заказу', order_id, id
		FROM payments WHERE id = $1
	`, paymentID)
	if err != nil {
		return fmt.Errorf("seed insert ledger entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with demo order", "account", demoAccountEmail, "order_id", orderID)
	return nil
}
