package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"toolshop/internal/models"
	"toolshop/internal/store"
)

// orderInput is the writable part of an order. Items are accepted only on
// create; afterwards they are a read-only record of the checkout.
type orderInput struct {
	AccountID *uuid.UUID         `json:"account_id"`
	Email     string             `json:"email"`
	Phone     string             `json:"phone"`
	FullName  string             `json:"full_name"`
	Address   string             `json:"address"`
	Status    models.OrderStatus `json:"status"`
	Total     *decimal.Decimal   `json:"total"`
	Comment   string             `json:"comment"`
	Items     []orderItemInput   `json:"items"`
}

// orderItemInput is one order line. When product_id is set, a blank name
// or missing price is filled in from the product as it is now.
type orderItemInput struct {
	ProductID   *uuid.UUID       `json:"product_id"`
	ProductName string           `json:"product_name"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int             `json:"quantity"`
}

func (in orderInput) apply(o *models.Order) {
	o.AccountID = in.AccountID
	o.Email = strings.TrimSpace(in.Email)
	o.Phone = strings.TrimSpace(in.Phone)
	o.FullName = strings.TrimSpace(in.FullName)
	o.Address = in.Address
	o.Status = in.Status
	if in.Total != nil {
		o.Total = *in.Total
	}
	o.Comment = in.Comment
}

// snapshotItem builds an order line, copying the product's current name and
// price where the request leaves them out.
func (a *Admin) snapshotItem(r *http.Request, in orderItemInput) (models.OrderItem, error) {
	item := models.OrderItem{
		ProductID:   in.ProductID,
		ProductName: strings.TrimSpace(in.ProductName),
		Quantity:    1,
	}
	if in.Quantity != nil {
		item.Quantity = *in.Quantity
	}
	if in.Price != nil {
		item.Price = *in.Price
	}

	if in.ProductID != nil && (item.ProductName == "" || in.Price == nil) {
		p, err := a.products.FindByID(r.Context(), *in.ProductID)
		if err != nil {
			return item, err
		}
		if p == nil {
			return item, &models.ValidationError{Field: "product_id", Message: "product does not exist"}
		}
		if item.ProductName == "" {
			item.ProductName = p.Name
		}
		if in.Price == nil {
			item.Price = p.Price
		}
	}
	return item, nil
}

// ListOrders returns orders, newest first. Filters: ?status=, ?from= and
// ?to= (inclusive days) and ?q= (email, name or phone).
func (a *Admin) ListOrders(w http.ResponseWriter, r *http.Request) {
	status, err := queryEnum(r, "status", models.ParseOrderStatus)
	if err != nil {
		writeError(w, r, err)
		return
	}
	from, err := queryDate(r, "from")
	if err != nil {
		writeError(w, r, err)
		return
	}
	to, err := queryDate(r, "to")
	if err != nil {
		writeError(w, r, err)
		return
	}

	orders, err := a.orders.List(r.Context(), store.OrderFilter{
		Status: status,
		From:   from,
		To:     dayAfter(to),
		Search: strings.TrimSpace(r.URL.Query().Get("q")),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": orders})
}

// GetOrder returns an order with its items and payments.
func (a *Admin) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	o, err := found(a.orders.FindByID(r.Context(), id))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// CreateOrder records an order with its lines. Without an explicit total the
// sum of the line subtotals is used.
func (a *Admin) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var in orderInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	var o models.Order
	in.apply(&o)
	for _, itemIn := range in.Items {
		item, err := a.snapshotItem(r, itemIn)
		if err != nil {
			writeError(w, r, err)
			return
		}
		o.Items = append(o.Items, item)
	}
	if in.Total == nil {
		o.Total = o.ItemsTotal()
	}

	created, err := a.orders.Create(r.Context(), &o)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (a *Admin) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in orderInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	if len(in.Items) > 0 {
		writeError(w, r, badRequestf("order items cannot be changed after checkout"))
		return
	}

	ctx := r.Context()
	o, err := found(a.orders.FindByID(ctx, id))
	if err != nil {
		writeError(w, r, err)
		return
	}
	in.apply(o)
	if err := a.orders.Update(ctx, o); err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := found(a.orders.FindByID(ctx, id))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// SetOrderStatus changes only the status. Any status may follow any other.
func (a *Admin) SetOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	status, err := models.ParseOrderStatus(in.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := a.orders.UpdateStatus(r.Context(), id, status); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "status": status})
}

// DeleteOrder removes an order and its lines. Its payments and ledger
// entries stay with the order link cleared.
func (a *Admin) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := a.orders.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListOrderItems returns order lines, optionally for one order (?order=).
func (a *Admin) ListOrderItems(w http.ResponseWriter, r *http.Request) {
	orderID, err := queryUUID(r, "order")
	if err != nil {
		writeError(w, r, err)
		return
	}
	items, err := a.orderItems.List(r.Context(), orderID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// paymentInput is the writable part of a payment.
type paymentInput struct {
	OrderID     *uuid.UUID           `json:"order_id"`
	Amount      decimal.Decimal      `json:"amount"`
	Method      models.PaymentMethod `json:"method"`
	Status      models.PaymentStatus `json:"status"`
	Description string               `json:"description"`
}

func (in paymentInput) apply(p *models.Payment) {
	p.OrderID = in.OrderID
	p.Amount = in.Amount
	p.Method = in.Method
	p.Status = in.Status
	p.Description = strings.TrimSpace(in.Description)
}

// ListPayments returns payments, newest first. Filters: ?status=, ?method=
// and ?order=.
func (a *Admin) ListPayments(w http.ResponseWriter, r *http.Request) {
	status, err := queryEnum(r, "status", models.ParsePaymentStatus)
	if err != nil {
		writeError(w, r, err)
		return
	}
	method, err := queryEnum(r, "method", models.ParsePaymentMethod)
	if err != nil {
		writeError(w, r, err)
		return
	}
	orderID, err := queryUUID(r, "order")
	if err != nil {
		writeError(w, r, err)
		return
	}

	payments, err := a.payments.List(r.Context(), store.PaymentFilter{
		Status:  status,
		Method:  method,
		OrderID: orderID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": payments})
}

func (a *Admin) GetPayment(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	p, err := found(a.payments.FindByID(r.Context(), id))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (a *Admin) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var in paymentInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	var p models.Payment
	in.apply(&p)
	created, err := a.payments.Create(r.Context(), &p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (a *Admin) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in paymentInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	ctx := r.Context()
	p, err := found(a.payments.FindByID(ctx, id))
	if err != nil {
		writeError(w, r, err)
		return
	}
	in.apply(p)
	if err := a.payments.Update(ctx, p); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// UpdateOrderPayment edits a payment inline from the order page. Only the
// fields present in the body change, and the payment must belong to the
// order in the URL.
func (a *Admin) UpdateOrderPayment(w http.ResponseWriter, r *http.Request) {
	orderID, err := urlID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	paymentID, err := urlID(r, "paymentID")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in struct {
		Amount      *decimal.Decimal      `json:"amount"`
		Method      *models.PaymentMethod `json:"method"`
		Status      *models.PaymentStatus `json:"status"`
		Description *string               `json:"description"`
	}
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	ctx := r.Context()
	p, err := found(a.payments.FindByID(ctx, paymentID))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if p.OrderID == nil || *p.OrderID != orderID {
		writeError(w, r, store.ErrNotFound)
		return
	}

	if in.Amount != nil {
		p.Amount = *in.Amount
	}
	if in.Method != nil {
		p.Method = *in.Method
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if err := a.payments.Update(ctx, p); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DeletePayment removes a payment. Ledger entries keep existing with the
// link cleared.
func (a *Admin) DeletePayment(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := a.payments.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
