package store

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"toolshop/internal/models"
)

func createTestOrder(t *testing.T, orders *OrderStore, accountID *uuid.UUID) *models.Order {
	t.Helper()
	o, err := orders.Create(bg, &models.Order{
		AccountID: accountID,
		Email:     "buyer@example.com",
		Phone:     "+7 900 000-00-00",
		FullName:  "Иван Петров",
		Total:     decimal.RequireFromString("9580.00"),
		Items: []models.OrderItem{
			{ProductName: "Дрель", Price: decimal.RequireFromString("4790.00"), Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("Create order: %v", err)
	}
	return o
}

func TestOrderCreateLoadsItemsAndPayments(t *testing.T) {
	db := testDB(t)
	orders := NewOrderStore(db)
	payments := NewPaymentStore(db)

	o := createTestOrder(t, orders, nil)
	t.Cleanup(func() { cleanRows(t, db, "orders", o.ID) })

	if o.Status != models.OrderStatusNew {
		t.Errorf("default status = %q, want new", o.Status)
	}

	pay, err := payments.Create(bg, &models.Payment{OrderID: &o.ID, Amount: o.Total})
	if err != nil {
		t.Fatalf("Create payment: %v", err)
	}
	t.Cleanup(func() { cleanRows(t, db, "payments", pay.ID) })
	if pay.Method != models.PaymentMethodCard || pay.Status != models.PaymentStatusPending {
		t.Errorf("payment defaults = %s/%s", pay.Method, pay.Status)
	}

	got, err := orders.FindByID(bg, o.ID)
	if err != nil || got == nil {
		t.Fatalf("FindByID: %v, %v", got, err)
	}
	if len(got.Items) != 1 || len(got.Payments) != 1 {
		t.Fatalf("items=%d payments=%d, want 1/1", len(got.Items), len(got.Payments))
	}
	if !got.ItemsTotal().Equal(decimal.RequireFromString("9580")) {
		t.Errorf("ItemsTotal = %s", got.ItemsTotal())
	}

	if err := orders.UpdateStatus(bg, o.ID, models.OrderStatusDelivered); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	// Any label may follow any other.
	if err := orders.UpdateStatus(bg, o.ID, models.OrderStatusNew); err != nil {
		t.Fatalf("UpdateStatus back to new: %v", err)
	}
	var verr *models.ValidationError
	if err := orders.UpdateStatus(bg, o.ID, "lost"); !errors.As(err, &verr) {
		t.Errorf("unknown status: got %v, want validation error", err)
	}
}

func TestOrderDeleteCascadesItemsAndKeepsMoneyRecords(t *testing.T) {
	db := testDB(t)
	orders := NewOrderStore(db)
	items := NewOrderItemStore(db)
	payments := NewPaymentStore(db)
	ledger := NewAccountingStore(db)

	o := createTestOrder(t, orders, nil)
	pay, err := payments.Create(bg, &models.Payment{OrderID: &o.ID, Amount: o.Total, Status: models.PaymentStatusCompleted})
	if err != nil {
		t.Fatalf("Create payment: %v", err)
	}
	entry, err := ledger.Create(bg, &models.AccountingEntry{
		Date:        time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC),
		Type:        models.EntryTypeIncome,
		Amount:      o.Total,
		Description: "Оплата заказа",
		OrderID:     &o.ID,
		PaymentID:   &pay.ID,
	})
	if err != nil {
		t.Fatalf("Create entry: %v", err)
	}
	t.Cleanup(func() {
		cleanRows(t, db, "accounting_entries", entry.ID)
		cleanRows(t, db, "payments", pay.ID)
	})

	if err := orders.Delete(bg, o.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	left, err := items.ListByOrder(bg, o.ID)
	if err != nil || len(left) != 0 {
		t.Errorf("items after delete = %d, err %v", len(left), err)
	}

	gotPay, _ := payments.FindByID(bg, pay.ID)
	if gotPay == nil || gotPay.OrderID != nil {
		t.Errorf("payment after order delete = %+v, want kept with nil order", gotPay)
	}
	gotEntry, _ := ledger.FindByID(bg, entry.ID)
	if gotEntry == nil || gotEntry.OrderID != nil || gotEntry.PaymentID == nil {
		t.Errorf("entry after order delete = %+v, want kept with nil order", gotEntry)
	}

	if err := payments.Delete(bg, pay.ID); err != nil {
		t.Fatalf("Delete payment: %v", err)
	}
	gotEntry, _ = ledger.FindByID(bg, entry.ID)
	if gotEntry == nil || gotEntry.PaymentID != nil {
		t.Errorf("entry after payment delete = %+v, want kept with nil payment", gotEntry)
	}
}

func TestAccountDeleteKeepsOrders(t *testing.T) {
	db := testDB(t)
	accounts := NewAccountStore(db)
	orders := NewOrderStore(db)

	acc, err := accounts.Create(bg, &models.Account{Email: uniq("buyer") + "@example.com"})
	if err != nil {
		t.Fatalf("Create account: %v", err)
	}
	o := createTestOrder(t, orders, &acc.ID)
	t.Cleanup(func() {
		cleanRows(t, db, "orders", o.ID)
		cleanRows(t, db, "accounts", acc.ID)
	})

	if err := accounts.Delete(bg, acc.ID); err != nil {
		t.Fatalf("Delete account: %v", err)
	}
	got, err := orders.FindByID(bg, o.ID)
	if err != nil || got == nil {
		t.Fatalf("order should survive account deletion: %v", err)
	}
	if got.AccountID != nil {
		t.Errorf("order account = %v, want nil", got.AccountID)
	}
}

func TestOrderCreateRollsBackOnBadItem(t *testing.T) {
	db := testDB(t)
	orders := NewOrderStore(db)

	missing := uuid.New()
	_, err := orders.Create(bg, &models.Order{
		Email: "rollback@example.com",
		Items: []models.OrderItem{
			{ProductName: "Нет такого", ProductID: &missing, Price: decimal.Zero, Quantity: 1},
		},
	})
	if !errors.Is(err, ErrReference) {
		t.Fatalf("unknown product: got %v, want ErrReference", err)
	}

	list, err := orders.List(bg, OrderFilter{Search: "rollback@example.com"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("order persisted despite failed item insert")
	}
}
