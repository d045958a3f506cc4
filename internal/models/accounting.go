// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"toolshop/internal/price"
)

// EntryType is the direction of a ledger line.
type EntryType string

const (
	EntryTypeIncome  EntryType = "income"
	EntryTypeExpense EntryType = "expense"
)

var entryTypes = []EntryType{EntryTypeIncome, EntryTypeExpense}

var entryTypeLabels = map[EntryType]string{
	EntryTypeIncome:  "Приход",
	EntryTypeExpense: "Расход",
}

// Valid reports whether t is a known entry type.
func (t EntryType) Valid() bool {
	_, ok := entryTypeLabels[t]
	return ok
}

// Label returns the human-readable entry type.
func (t EntryType) Label() string {
	return entryTypeLabels[t]
}

// Sign returns "+" for income and "−" for expense.
func (t EntryType) Sign() string {
	if t == EntryTypeIncome {
		return "+"
	}
	return "−"
}

// ParseEntryType converts a raw value into an EntryType.
func ParseEntryType(v string) (EntryType, error) {
	t := EntryType(v)
	if !t.Valid() {
		return "", &UnknownValueError{Kind: "entry type", Value: v}
	}
	return t, nil
}

// EntryTypeChoices lists both entry types in display order.
func EntryTypeChoices() []Choice {
	out := make([]Choice, len(entryTypes))
	for i, t := range entryTypes {
		out[i] = Choice{Value: string(t), Label: t.Label()}
	}
	return out
}

// DateLayout is the format of AccountingEntry.Date in JSON and in filters.
const DateLayout = "2006-01-02"

// AccountingEntry is a single ledger line: income or expense, optionally
// linked to the order and payment it came from. Amount and type are not
// meant to change once recorded, although nothing enforces it.
type AccountingEntry struct {
	ID          uuid.UUID       `json:"id"`
	Date        time.Time       `json:"date"`
	Type        EntryType       `json:"entry_type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	OrderID     *uuid.UUID      `json:"order_id"`
	PaymentID   *uuid.UUID      `json:"payment_id"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (e *AccountingEntry) String() string {
	desc := []rune(e.Description)
	if len(desc) > 40 {
		desc = desc[:40]
	}
	return e.Date.Format(DateLayout) + ": " + e.Type.Sign() + e.Amount.StringFixed(2) +
		" " + price.Currency + " — " + string(desc)
}

// Validate checks the entry fields against the column constraints.
func (e *AccountingEntry) Validate() error {
	var typ, date error
	if !e.Type.Valid() {
		typ = invalid("entry_type", "unknown value %q", e.Type)
	}
	if e.Date.IsZero() {
		date = invalid("date", "is required")
	}
	return firstError(
		date,
		typ,
		checkMoney("amount", e.Amount),
		checkRequired("description", e.Description),
		checkLen("description", e.Description, MaxEntryDescLen),
	)
}

// LedgerTotals summarizes ledger lines over a period.
type LedgerTotals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// Balance is income minus expense.
func (t LedgerTotals) Balance() decimal.Decimal {
	return t.Income.Sub(t.Expense)
}
