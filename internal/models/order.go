// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the label attached to an order. Any status may be set at
// any time; there is no enforced transition graph.
type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "new"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

var orderStatuses = []OrderStatus{
	OrderStatusNew, OrderStatusConfirmed, OrderStatusPaid,
	OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled,
}

var orderStatusLabels = map[OrderStatus]string{
	OrderStatusNew:       "Новый",
	OrderStatusConfirmed: "Подтверждён",
	OrderStatusPaid:      "Оплачен",
	OrderStatusShipped:   "Отправлен",
	OrderStatusDelivered: "Доставлен",
	OrderStatusCancelled: "Отменён",
}

// Valid reports whether s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	_, ok := orderStatusLabels[s]
	return ok
}

// Label returns the human-readable status name.
func (s OrderStatus) Label() string {
	return orderStatusLabels[s]
}

// ParseOrderStatus converts a raw value into an OrderStatus.
func ParseOrderStatus(v string) (OrderStatus, error) {
	s := OrderStatus(v)
	if !s.Valid() {
		return "", &UnknownValueError{Kind: "order status", Value: v}
	}
	return s, nil
}

// OrderStatusChoices lists every order status in display order.
func OrderStatusChoices() []Choice {
	out := make([]Choice, len(orderStatuses))
	for i, s := range orderStatuses {
		out[i] = Choice{Value: string(s), Label: s.Label()}
	}
	return out
}

// Order is a customer order. Registered customers are linked through
// AccountID; guest checkouts only carry the contact fields.
type Order struct {
	ID        uuid.UUID       `json:"id"`
	AccountID *uuid.UUID      `json:"account_id"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	FullName  string          `json:"full_name"`
	Address   string          `json:"address"`
	Status    OrderStatus     `json:"status"`
	Total     decimal.Decimal `json:"total"`
	Comment   string          `json:"comment"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Populated by OrderStore.FindByID.
	Items    []OrderItem `json:"items,omitempty"`
	Payments []Payment   `json:"payments,omitempty"`
}

// ShortID returns the first block of the order UUID, used as the order number.
func (o *Order) ShortID() string {
	return o.ID.String()[:8]
}

func (o *Order) String() string {
	return fmt.Sprintf("Заказ #%s от %s", o.ShortID(), o.CreatedAt.Format("02.01.2006"))
}

// ItemsTotal sums the subtotals of the loaded items.
func (o *Order) ItemsTotal() decimal.Decimal {
	sum := decimal.Zero
	for i := range o.Items {
		sum = sum.Add(o.Items[i].Subtotal())
	}
	return sum
}

// Validate checks the order fields against the column constraints.
func (o *Order) Validate() error {
	var status error
	if !o.Status.Valid() {
		status = invalid("status", "unknown value %q", o.Status)
	}
	return firstError(
		checkEmail("email", o.Email),
		checkLen("phone", o.Phone, MaxPhoneLen),
		checkLen("full_name", o.FullName, MaxFullNameLen),
		status,
		checkMoney("total", o.Total),
	)
}

// OrderItem is one line of an order: a snapshot of the product name and
// unit price at the time the order was placed.
type OrderItem struct {
	ID          uuid.UUID       `json:"id"`
	OrderID     uuid.UUID       `json:"order_id"`
	ProductID   *uuid.UUID      `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

// Subtotal is price × quantity. It is derived, never stored.
func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (i *OrderItem) String() string {
	return fmt.Sprintf("%s x %d", i.ProductName, i.Quantity)
}

// Validate checks the item fields against the column constraints.
func (i *OrderItem) Validate() error {
	return firstError(
		checkRequired("product_name", i.ProductName),
		checkLen("product_name", i.ProductName, MaxOrderItemNameLen),
		checkMoney("price", i.Price),
		checkNonNegative("quantity", i.Quantity),
	)
}
