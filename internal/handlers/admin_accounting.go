package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"toolshop/internal/models"
	"toolshop/internal/store"
)

// entryInput is the writable part of a ledger entry. Date is a plain
// YYYY-MM-DD day and defaults to today.
type entryInput struct {
	Date        string           `json:"date"`
	Type        models.EntryType `json:"entry_type"`
	Amount      decimal.Decimal  `json:"amount"`
	Description string           `json:"description"`
	OrderID     *uuid.UUID       `json:"order_id"`
	PaymentID   *uuid.UUID       `json:"payment_id"`
}

func (in entryInput) apply(e *models.AccountingEntry, now time.Time) error {
	date := strings.TrimSpace(in.Date)
	if date == "" {
		e.Date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	} else {
		d, err := time.Parse(models.DateLayout, date)
		if err != nil {
			return &models.ValidationError{Field: "date", Message: "must be a date like 2026-01-31"}
		}
		e.Date = d
	}
	e.Type = in.Type
	e.Amount = in.Amount
	e.Description = strings.TrimSpace(in.Description)
	e.OrderID = in.OrderID
	e.PaymentID = in.PaymentID
	return nil
}

// entryFilter reads ?type=, ?from=, ?to= and ?q= into a ledger filter.
// Both date bounds are inclusive.
func entryFilter(r *http.Request) (store.EntryFilter, error) {
	typ, err := queryEnum(r, "type", models.ParseEntryType)
	if err != nil {
		return store.EntryFilter{}, err
	}
	from, err := queryDate(r, "from")
	if err != nil {
		return store.EntryFilter{}, err
	}
	to, err := queryDate(r, "to")
	if err != nil {
		return store.EntryFilter{}, err
	}
	return store.EntryFilter{
		Type:   typ,
		From:   from,
		To:     to,
		Search: strings.TrimSpace(r.URL.Query().Get("q")),
	}, nil
}

// ListEntries returns ledger entries, latest day first.
func (a *Admin) ListEntries(w http.ResponseWriter, r *http.Request) {
	f, err := entryFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	entries, err := a.ledger.List(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": entries})
}

// LedgerTotals sums income and expense over the same filters as the list.
func (a *Admin) LedgerTotals(w http.ResponseWriter, r *http.Request) {
	f, err := entryFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	totals, err := a.ledger.Totals(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"income":  totals.Income,
		"expense": totals.Expense,
		"balance": totals.Balance(),
	})
}

func (a *Admin) GetEntry(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	e, err := found(a.ledger.FindByID(r.Context(), id))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (a *Admin) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var in entryInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	var e models.AccountingEntry
	if err := in.apply(&e, time.Now()); err != nil {
		writeError(w, r, err)
		return
	}
	created, err := a.ledger.Create(r.Context(), &e)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (a *Admin) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in entryInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	ctx := r.Context()
	e, err := found(a.ledger.FindByID(ctx, id))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := in.apply(e, time.Now()); err != nil {
		writeError(w, r, err)
		return
	}
	if err := a.ledger.Update(ctx, e); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (a *Admin) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := a.ledger.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
