// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Account is a registered customer. Orders reference it softly: deleting an
// account keeps its orders and clears their link.
type Account struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// Validate checks the account fields against the column constraints.
func (a *Account) Validate() error {
	return firstError(
		checkRequired("email", a.Email),
		checkEmail("email", a.Email),
		checkLen("display_name", a.DisplayName, MaxDisplayNameLen),
	)
}
