// Package store provides database access methods for all catalog, order and
// ledger entities. Each store struct wraps a *sql.DB and exposes typed query
// methods.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned by writes that target a row that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write violates a unique constraint.
	ErrConflict = errors.New("already exists")
	// ErrReference is returned when a write points at a row that does not exist.
	ErrReference = errors.New("referenced row does not exist")
	// ErrCycle is returned when re-parenting a category would create a loop.
	ErrCycle = errors.New("category cannot be moved under its own descendant")
)

// Postgres error codes mapped to store errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// execer is implemented by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// translate maps constraint violations onto the store's sentinel errors so
// callers can use errors.Is without importing the driver.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return fmt.Errorf("%w (%s): %w", ErrConflict, pgErr.ConstraintName, err)
	case pgForeignKeyViolation:
		return fmt.Errorf("%w (%s): %w", ErrReference, pgErr.ConstraintName, err)
	}
	return err
}

// expectRow returns ErrNotFound when an UPDATE or DELETE touched nothing.
func expectRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// where accumulates SQL conditions with numbered placeholders.
type where struct {
	clauses []string
	args    []any
}

// add appends a condition; each "?" in cond is replaced by the next
// placeholder bound to the matching arg.
func (w *where) add(cond string, args ...any) {
	for _, a := range args {
		w.args = append(w.args, a)
		cond = strings.Replace(cond, "?", fmt.Sprintf("$%d", len(w.args)), 1)
	}
	w.clauses = append(w.clauses, cond)
}

// next returns the placeholder for an extra trailing arg (LIMIT, OFFSET).
func (w *where) next(arg any) string {
	w.args = append(w.args, arg)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// likePattern builds a case-insensitive substring pattern, escaping LIKE
// metacharacters in the user's input.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(s)) + "%"
}
